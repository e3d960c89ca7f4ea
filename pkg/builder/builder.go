// Package builder turns loader callbacks into a widget tree.
//
// A Builder keeps a cursor: the innermost open widget. OnWidgetStart creates
// a widget under the cursor and moves the cursor to it, OnWidgetProp sets a
// property on the cursor, and OnWidgetEnd moves the cursor back to the
// parent. The first widget created becomes the root.
//
// Children of a dialog are placed in the dialog's client area. Nodes whose
// type has no registered factory are skipped together with their subtree.
//
// Every callback appends an [Event], so callers can see what was created,
// set or skipped without reading logs.
package builder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/value"
	"github.com/go-drift/uiloader/pkg/widgets"
)

var (
	// ErrBadParams is returned for property values the widget layer cannot take.
	ErrBadParams = errors.New("builder: bad params")
	// ErrUnbalanced is returned when OnWidgetEnd has no open widget to close.
	ErrUnbalanced = errors.New("builder: end without open widget")
)

// LayoutFunc resolves a layout spec inside a parent of the given size.
type LayoutFunc func(s layout.Spec, parentW, parentH int) layout.Rect

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry sets the factory registry. The default is DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(b *Builder) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithLayout replaces layout.Calc.
func WithLayout(fn LayoutFunc) Option {
	return func(b *Builder) {
		if fn != nil {
			b.layout = fn
		}
	}
}

// Builder builds widgets into a tree. It implements loader.Builder.
//
// A Builder is not safe for concurrent use. Use one per load.
type Builder struct {
	tree     *widgets.Tree
	registry *Registry
	log      *zap.Logger
	layout   LayoutFunc

	root    widgets.Handle
	current widgets.Handle
	// skip counts open nodes inside an unsupported subtree. While it is
	// non-zero, current holds the widget to return to.
	skip int

	events []Event
}

var _ loader.Builder = (*Builder)(nil)

// New returns a builder that adds widgets to tree. A nil tree gets a fresh one.
func New(tree *widgets.Tree, opts ...Option) *Builder {
	if tree == nil {
		tree = widgets.NewTree()
	}
	b := &Builder{
		tree:   tree,
		log:    zap.NewNop(),
		layout: layout.Calc,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.registry == nil {
		b.registry = DefaultRegistry()
	}
	return b
}

// Tree returns the tree widgets are built into.
func (b *Builder) Tree() *widgets.Tree { return b.tree }

// Root returns the first widget created, or widgets.None.
func (b *Builder) Root() widgets.Handle { return b.root }

// Current returns the widget under the cursor, or widgets.None inside a
// skipped subtree.
func (b *Builder) Current() widgets.Handle {
	if b.skip > 0 {
		return widgets.None
	}
	return b.current
}

// Events returns a copy of the events recorded so far.
func (b *Builder) Events() []Event {
	return append([]Event(nil), b.events...)
}

// Counts returns how many events ended with each outcome.
func (b *Builder) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, e := range b.events {
		counts[e.Outcome]++
	}
	return counts
}

func (b *Builder) record(e Event) {
	b.events = append(b.events, e)
}

// OnWidgetStart creates the widget described by desc under the cursor.
// Unsupported types are logged and skipped, not reported as errors.
func (b *Builder) OnWidgetStart(desc loader.Desc) error {
	ev := Event{Op: OpStart, Type: desc.Type, TypeName: desc.TypeName}
	if b.skip > 0 {
		b.skip++
		ev.Outcome = SkippedInUnsupported
		b.record(ev)
		return nil
	}

	factory, ok := b.registry.Lookup(desc.Type)
	if !ok || desc.Type == widgets.TypeNone {
		fields := []zap.Field{zap.Int("type", int(desc.Type)), zap.String("name", desc.Name())}
		if s, ok := b.registry.Suggest(desc.TypeName); ok {
			fields = append(fields, zap.String("suggest", s))
		}
		b.log.Debug("unsupported widget type", fields...)
		b.skip = 1
		ev.Outcome = SkippedUnsupportedType
		b.record(ev)
		return nil
	}

	parent := b.current
	var r layout.Rect
	if parent != widgets.None {
		pw, ph := b.tree.Size(parent)
		r = b.layout(desc.Layout, pw, ph)
		if client := b.tree.DialogClient(parent); client != widgets.None {
			parent = client
		}
	} else {
		r = desc.Layout.Raw()
	}

	h, err := factory(b.tree, parent, r.X, r.Y, r.W, r.H)
	if err != nil {
		err = &uierrors.BuildError{Callback: "start", Widget: desc.Name(), Err: err}
		ev.Outcome, ev.Err = Rejected, err
		b.record(ev)
		return err
	}

	b.current = h
	if b.root == widgets.None {
		b.root = h
	}
	b.log.Debug("widget created",
		zap.Stringer("type", desc.Type),
		zap.Uint32("handle", uint32(h)),
		zap.Int("x", r.X), zap.Int("y", r.Y),
		zap.Int("w", r.W), zap.Int("h", r.H),
	)
	ev.Outcome, ev.Handle = Created, h
	b.record(ev)
	return nil
}

// OnWidgetProp sets one property on the widget under the cursor.
//
// "text" must be shorter than widgets.MaxTextLen bytes and is stored as
// UTF-16. "align_v" and "align_h" are stored as their enum values; unknown
// names are logged and skipped. Everything else is stored as a string.
func (b *Builder) OnWidgetProp(name, val string) error {
	ev := Event{Op: OpProp, Key: name, Value: val}
	if b.skip > 0 {
		ev.Outcome = SkippedInUnsupported
		b.record(ev)
		return nil
	}
	h := b.current
	if h == widgets.None {
		b.log.Debug("property without widget", zap.String("key", name))
		ev.Outcome = SkippedNoWidget
		b.record(ev)
		return nil
	}
	ev.Handle = h

	var v value.Value
	switch name {
	case widgets.PropText:
		if len(val) >= widgets.MaxTextLen {
			err := fmt.Errorf("%w: text is %d bytes, want less than %d", ErrBadParams, len(val), widgets.MaxTextLen)
			ev.Outcome, ev.Err = Rejected, err
			b.record(ev)
			return err
		}
		v = value.Text(val)
	case widgets.PropAlignV, widgets.PropAlignH:
		find := widgets.FindAlignV
		if name == widgets.PropAlignH {
			find = widgets.FindAlignH
		}
		item, ok := find(val)
		if !ok {
			b.log.Debug("invalid alignment", zap.String("key", name), zap.String("value", val))
			ev.Outcome = SkippedInvalidEnum
			b.record(ev)
			return nil
		}
		v = value.Int(item.Value)
	default:
		v = value.String(val)
	}

	if err := b.tree.SetProp(h, name, v); err != nil {
		ev.Outcome, ev.Err = Rejected, err
		b.record(ev)
		return err
	}
	ev.Outcome = PropertySet
	b.record(ev)
	return nil
}

// OnWidgetPropEnd marks the end of a node's properties. The builder has no
// use for it beyond recording it.
func (b *Builder) OnWidgetPropEnd() error {
	ev := Event{Op: OpPropEnd, Outcome: PropsEnded, Handle: b.Current()}
	if b.skip > 0 {
		ev.Outcome = SkippedInUnsupported
	}
	b.record(ev)
	return nil
}

// OnWidgetEnd closes the widget under the cursor and moves the cursor to its
// parent. A widget placed in a dialog's client area closes back to the
// dialog, so its siblings land in the client area too.
func (b *Builder) OnWidgetEnd() error {
	if b.skip > 0 {
		b.skip--
		outcome := SkippedInUnsupported
		if b.skip == 0 {
			outcome = Closed
		}
		b.record(Event{Op: OpEnd, Outcome: outcome})
		return nil
	}
	h := b.current
	if h == widgets.None {
		b.record(Event{Op: OpEnd, Outcome: Rejected, Err: ErrUnbalanced})
		return ErrUnbalanced
	}
	parent := b.tree.Parent(h)
	if b.tree.Type(parent) == widgets.TypeDialogClient {
		parent = b.tree.Parent(parent)
	}
	b.current = parent
	b.record(Event{Op: OpEnd, Outcome: Closed, Handle: h})
	return nil
}
