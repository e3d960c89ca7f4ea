// Package loader parses UI descriptions and drives a Builder through them.
//
// A loader walks the description depth-first and, for every widget node,
// calls OnWidgetStart, then OnWidgetProp once per property in description
// order, then OnWidgetPropEnd, then recurses into the children, then calls
// OnWidgetEnd.
//
// Two formats are supported: a compact binary format (the default, see
// [Encode]) and YAML (see [DecodeYAML]). [Auto] picks one by sniffing the
// binary magic number.
package loader

import (
	"encoding/binary"

	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/widgets"
)

// MaxDepth bounds widget nesting in a description.
const MaxDepth = 64

// Desc describes one widget node: what to create and where.
type Desc struct {
	// Type is the widget type code.
	Type widgets.Type
	// TypeName is the symbolic type as written in the source when it names
	// no known type. It is kept for diagnostics.
	TypeName string
	// Layout is the node's possibly relative geometry.
	Layout layout.Spec
}

// Name returns TypeName if set, otherwise the type code's name.
func (d Desc) Name() string {
	if d.TypeName != "" {
		return d.TypeName
	}
	return d.Type.String()
}

// Builder receives the callbacks of a load.
type Builder interface {
	OnWidgetStart(desc Desc) error
	OnWidgetProp(name, value string) error
	OnWidgetPropEnd() error
	OnWidgetEnd() error
}

// Loader parses data and drives b.
//
// An error from OnWidgetProp affects that property only: it is reported
// through the errors package and the load continues. Errors from the other
// callbacks and parse errors stop the load.
type Loader interface {
	Load(data []byte, b Builder) error
}

// Auto loads binary descriptions when data starts with [Magic] and YAML
// descriptions otherwise.
type Auto struct{}

// Default returns the loader used when none is configured.
func Default() Loader { return Auto{} }

// Load implements Loader.
func (Auto) Load(data []byte, b Builder) error {
	if IsBinary(data) {
		return Binary{}.Load(data, b)
	}
	return YAML{}.Load(data, b)
}

// IsBinary reports whether data starts with the binary magic number.
func IsBinary(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == Magic
}

func emitProp(b Builder, desc Desc, name, value string) {
	if err := b.OnWidgetProp(name, value); err != nil {
		uierrors.ReportBuildError(&uierrors.BuildError{
			Callback: "prop",
			Widget:   desc.Name(),
			Key:      name,
			Err:      err,
		})
	}
}
