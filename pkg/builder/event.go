package builder

import (
	"strconv"

	"github.com/go-drift/uiloader/pkg/widgets"
)

// Op names the builder callback that produced an Event.
type Op uint8

const (
	OpStart Op = iota
	OpProp
	OpPropEnd
	OpEnd
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpProp:
		return "prop"
	case OpPropEnd:
		return "prop_end"
	case OpEnd:
		return "end"
	default:
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
}

// Outcome is what a callback did.
type Outcome uint8

const (
	// Created: a widget was created and is now the cursor.
	Created Outcome = iota
	// SkippedUnsupportedType: the node's type has no factory. Its subtree
	// is skipped.
	SkippedUnsupportedType
	// SkippedInUnsupported: the callback belongs to a skipped subtree.
	SkippedInUnsupported
	// PropertySet: exactly one property was stored.
	PropertySet
	// SkippedInvalidEnum: an alignment name was not found; nothing stored.
	SkippedInvalidEnum
	// SkippedNoWidget: a property arrived with no widget under the cursor.
	SkippedNoWidget
	// Rejected: the callback returned an error.
	Rejected
	// Closed: the cursor moved to the parent.
	Closed
	// PropsEnded: end of a node's properties.
	PropsEnded
)

var outcomeNames = [...]string{
	Created:                "created",
	SkippedUnsupportedType: "skipped_unsupported_type",
	SkippedInUnsupported:   "skipped_in_unsupported",
	PropertySet:            "property_set",
	SkippedInvalidEnum:     "skipped_invalid_enum",
	SkippedNoWidget:        "skipped_no_widget",
	Rejected:               "rejected",
	Closed:                 "closed",
	PropsEnded:             "props_ended",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "outcome(" + strconv.Itoa(int(o)) + ")"
}

// Skipped reports whether the outcome left the tree unchanged because the
// input was ignored.
func (o Outcome) Skipped() bool {
	switch o {
	case SkippedUnsupportedType, SkippedInUnsupported, SkippedInvalidEnum, SkippedNoWidget:
		return true
	}
	return false
}

// Event records one builder callback.
type Event struct {
	Op      Op
	Outcome Outcome
	// Type is the node's type for start events.
	Type widgets.Type
	// TypeName is the node's symbolic type for start events, if it had one.
	TypeName string
	// Handle is the widget created, modified or closed.
	Handle widgets.Handle
	// Key and Value are the property for prop events.
	Key   string
	Value string
	Err   error
}

func (e Event) String() string {
	s := e.Op.String() + " " + e.Outcome.String()
	switch e.Op {
	case OpStart:
		s += " " + e.Type.String()
		if e.TypeName != "" {
			s += " " + strconv.Quote(e.TypeName)
		}
	case OpProp:
		s += " " + e.Key + "=" + strconv.Quote(e.Value)
	}
	if e.Handle != widgets.None {
		s += " #" + strconv.Itoa(int(e.Handle))
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
