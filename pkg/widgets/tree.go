package widgets

import (
	"errors"
	"slices"
	"sort"

	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/value"
)

// ErrInvalidHandle is returned for operations on a handle the tree does not hold.
var ErrInvalidHandle = errors.New("widgets: invalid handle")

// Handle addresses a widget inside a Tree. Handles stay valid for the
// lifetime of the tree; the zero Handle (None) means "no widget".
type Handle uint32

// None is the absent widget.
const None Handle = 0

type node struct {
	typ      Type
	bounds   layout.Rect
	parent   Handle
	children []Handle
	props    map[string]value.Value
	client   Handle
}

// Tree is an arena of widgets. Nodes refer to each other by Handle, never by
// pointer, so the backing storage can grow freely.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: make([]node, 1, 64)}
}

// Len returns the number of widgets in the tree.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Valid reports whether h addresses a widget of t.
func (t *Tree) Valid(h Handle) bool {
	return h != None && int(h) < len(t.nodes)
}

// New adds a widget of the given type under parent (None for a root) and
// returns its handle. Widget-specific setup belongs in the Create* factories.
func (t *Tree) New(typ Type, parent Handle, bounds layout.Rect) (Handle, error) {
	if parent != None && !t.Valid(parent) {
		return None, ErrInvalidHandle
	}
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, node{typ: typ, bounds: bounds, parent: parent})
	if parent != None {
		p := &t.nodes[parent]
		p.children = append(p.children, h)
	}
	return h, nil
}

// Type returns the widget's type, or TypeNone for an invalid handle.
func (t *Tree) Type(h Handle) Type {
	if !t.Valid(h) {
		return TypeNone
	}
	return t.nodes[h].typ
}

// Parent returns the widget's parent, or None for roots and invalid handles.
func (t *Tree) Parent(h Handle) Handle {
	if !t.Valid(h) {
		return None
	}
	return t.nodes[h].parent
}

// Children returns a copy of the widget's child handles in creation order.
func (t *Tree) Children(h Handle) []Handle {
	if !t.Valid(h) {
		return nil
	}
	return slices.Clone(t.nodes[h].children)
}

// Bounds returns the widget's rectangle relative to its parent.
func (t *Tree) Bounds(h Handle) layout.Rect {
	if !t.Valid(h) {
		return layout.Rect{}
	}
	return t.nodes[h].bounds
}

// Size returns the widget's width and height.
func (t *Tree) Size(h Handle) (w, hgt int) {
	b := t.Bounds(h)
	return b.W, b.H
}

// DialogClient returns the content area of a dialog, or None if h is not a dialog.
func (t *Tree) DialogClient(h Handle) Handle {
	if t.Type(h) != TypeDialog {
		return None
	}
	return t.nodes[h].client
}

// SetProp stores a property on the widget, replacing any previous value.
func (t *Tree) SetProp(h Handle, key string, v value.Value) error {
	if !t.Valid(h) {
		return ErrInvalidHandle
	}
	n := &t.nodes[h]
	if n.props == nil {
		n.props = make(map[string]value.Value)
	}
	n.props[key] = v
	return nil
}

// Prop returns a property value and whether it was set.
func (t *Tree) Prop(h Handle, key string) (value.Value, bool) {
	if !t.Valid(h) {
		return value.Value{}, false
	}
	v, ok := t.nodes[h].props[key]
	return v, ok
}

// PropNames returns the names of all properties set on the widget, sorted.
func (t *Tree) PropNames(h Handle) []string {
	if !t.Valid(h) {
		return nil
	}
	names := make([]string, 0, len(t.nodes[h].props))
	for k := range t.nodes[h].props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Text returns the widget's "text" property decoded to UTF-8.
func (t *Tree) Text(h Handle) string {
	v, ok := t.Prop(h, PropText)
	if !ok {
		return ""
	}
	return v.String()
}

// Roots returns every widget without a parent, in creation order.
func (t *Tree) Roots() []Handle {
	var roots []Handle
	for i := 1; i < len(t.nodes); i++ {
		if t.nodes[i].parent == None {
			roots = append(roots, Handle(i))
		}
	}
	return roots
}

// Walk visits h and its descendants depth-first, pre-order. Returning false
// from fn skips the node's children.
func (t *Tree) Walk(h Handle, fn func(h Handle, depth int) bool) {
	t.walk(h, 0, fn)
}

func (t *Tree) walk(h Handle, depth int, fn func(Handle, int) bool) {
	if !t.Valid(h) {
		return
	}
	if !fn(h, depth) {
		return
	}
	for _, c := range t.nodes[h].children {
		t.walk(c, depth+1, fn)
	}
}
