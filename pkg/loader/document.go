package loader

// Prop is one name/value pair of a widget node.
type Prop struct {
	Name  string
	Value string
}

// Node is a decoded widget node with its properties and children.
type Node struct {
	Desc     Desc
	Props    []Prop
	Children []*Node
}

// Document is a fully decoded description.
type Document struct {
	Version string
	Root    *Node
}

// Walk drives b through doc exactly as a streaming loader would.
func Walk(doc *Document, b Builder) error {
	if doc == nil || doc.Root == nil {
		return nil
	}
	return walkNode(doc.Root, b)
}

func walkNode(n *Node, b Builder) error {
	if err := b.OnWidgetStart(n.Desc); err != nil {
		return err
	}
	for _, p := range n.Props {
		emitProp(b, n.Desc, p.Name, p.Value)
	}
	if err := b.OnWidgetPropEnd(); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walkNode(c, b); err != nil {
			return err
		}
	}
	return b.OnWidgetEnd()
}

// recorder is a Builder that rebuilds a Document from callbacks.
type recorder struct {
	root  *Node
	stack []*Node
}

func (r *recorder) OnWidgetStart(desc Desc) error {
	n := &Node{Desc: desc}
	if len(r.stack) == 0 {
		r.root = n
	} else {
		parent := r.stack[len(r.stack)-1]
		parent.Children = append(parent.Children, n)
	}
	r.stack = append(r.stack, n)
	return nil
}

func (r *recorder) OnWidgetProp(name, value string) error {
	n := r.stack[len(r.stack)-1]
	n.Props = append(n.Props, Prop{Name: name, Value: value})
	return nil
}

func (r *recorder) OnWidgetPropEnd() error { return nil }

func (r *recorder) OnWidgetEnd() error {
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}
