package loader

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/widgets"
)

// YAML loads YAML descriptions:
//
//	version: v1.0.0
//	widget:
//	  type: window
//	  w: 320
//	  h: 480
//	  children:
//	    - type: button
//	      x: c
//	      y: b:10
//	      w: 50%
//	      h: 30
//	      props:
//	        text: OK
//	        align_h: center
//
// Property order is kept as written. "type" is a name from
// [widgets.TypeNames] or a numeric type code.
type YAML struct{}

// Load implements Loader. The whole document is decoded before the first
// callback, so malformed YAML never yields a partial tree.
func (YAML) Load(data []byte, b Builder) error {
	doc, err := DecodeYAML(data)
	if err != nil {
		return err
	}
	return Walk(doc, b)
}

// DecodeYAML decodes a YAML description.
func DecodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &uierrors.ParseError{Format: "yaml", Reason: "invalid yaml", Err: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &uierrors.ParseError{Format: "yaml", Reason: "empty document"}
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, yamlFail(top, "top level must be a mapping")
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "version":
			doc.Version = val.Value
		case "widget":
			n, err := decodeYAMLNode(val, 0)
			if err != nil {
				return nil, err
			}
			doc.Root = n
		default:
			return nil, yamlFail(key, fmt.Sprintf("unknown field %q", key.Value))
		}
	}
	if err := CheckVersion(doc.Version); err != nil {
		return nil, &uierrors.ParseError{Format: "yaml", Reason: "version", Err: err}
	}
	if doc.Root == nil {
		return nil, yamlFail(top, "missing widget")
	}
	return doc, nil
}

func yamlFail(n *yaml.Node, reason string) error {
	return &uierrors.ParseError{Format: "yaml", Offset: int64(n.Line), Reason: reason}
}

func decodeYAMLNode(y *yaml.Node, depth int) (*Node, error) {
	if depth >= MaxDepth {
		return nil, yamlFail(y, fmt.Sprintf("nesting deeper than %d", MaxDepth))
	}
	if y.Kind != yaml.MappingNode {
		return nil, yamlFail(y, "widget must be a mapping")
	}

	n := &Node{}
	sawType := false
	geom := map[string]string{"x": "0", "y": "0", "w": "0", "h": "0"}
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], y.Content[i+1]
		switch key.Value {
		case "type":
			if val.Kind != yaml.ScalarNode {
				return nil, yamlFail(val, "type must be a scalar")
			}
			n.Desc.Type, n.Desc.TypeName = parseYAMLType(val.Value)
			sawType = true
		case "x", "y", "w", "h":
			if val.Kind != yaml.ScalarNode {
				return nil, yamlFail(val, key.Value+" must be a scalar")
			}
			geom[key.Value] = val.Value
		case "props":
			props, err := decodeYAMLProps(val)
			if err != nil {
				return nil, err
			}
			n.Props = props
		case "children":
			if val.Kind != yaml.SequenceNode {
				return nil, yamlFail(val, "children must be a sequence")
			}
			for _, c := range val.Content {
				child, err := decodeYAMLNode(c, depth+1)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			}
		default:
			return nil, yamlFail(key, fmt.Sprintf("unknown widget field %q", key.Value))
		}
	}
	if !sawType {
		return nil, yamlFail(y, "widget without type")
	}

	var err error
	l := &n.Desc.Layout
	if l.XAttr, l.X, err = layout.ParseX(geom["x"]); err != nil {
		return nil, yamlFail(y, err.Error())
	}
	if l.YAttr, l.Y, err = layout.ParseY(geom["y"]); err != nil {
		return nil, yamlFail(y, err.Error())
	}
	if l.WAttr, l.W, err = layout.ParseW(geom["w"]); err != nil {
		return nil, yamlFail(y, err.Error())
	}
	if l.HAttr, l.H, err = layout.ParseH(geom["h"]); err != nil {
		return nil, yamlFail(y, err.Error())
	}
	return n, nil
}

// parseYAMLType accepts a type name or a numeric code. Unknown names come
// back as TypeNone with the name kept so the builder can report it.
func parseYAMLType(s string) (widgets.Type, string) {
	if code, err := strconv.ParseUint(s, 10, 16); err == nil {
		return widgets.Type(code), ""
	}
	if t, ok := widgets.ParseType(s); ok {
		return t, ""
	}
	return widgets.TypeNone, s
}

func decodeYAMLProps(y *yaml.Node) ([]Prop, error) {
	if y.Kind != yaml.MappingNode {
		return nil, yamlFail(y, "props must be a mapping")
	}
	props := make([]Prop, 0, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], y.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, yamlFail(val, fmt.Sprintf("property %q must be a scalar", key.Value))
		}
		props = append(props, Prop{Name: key.Value, Value: val.Value})
	}
	return props, nil
}

// EncodeYAML renders doc back to the YAML description format.
func EncodeYAML(doc *Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("loader: encode yaml: empty document")
	}
	version := doc.Version
	if version == "" {
		version = CurrentVersion
	}
	top := &yaml.Node{Kind: yaml.MappingNode}
	top.Content = append(top.Content, scalar("version"), scalar(version), scalar("widget"), yamlNode(doc.Root))
	return yaml.Marshal(top)
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func yamlNode(n *Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	l := n.Desc.Layout
	typ := n.Desc.TypeName
	if typ == "" {
		typ = n.Desc.Type.String()
		if _, ok := widgets.ParseType(typ); !ok {
			typ = strconv.Itoa(int(n.Desc.Type))
		}
	}
	m.Content = append(m.Content,
		scalar("type"), scalar(typ),
		scalar("x"), scalar(layout.FormatX(l.XAttr, l.X)),
		scalar("y"), scalar(layout.FormatY(l.YAttr, l.Y)),
		scalar("w"), scalar(layout.FormatW(l.WAttr, l.W)),
		scalar("h"), scalar(layout.FormatH(l.HAttr, l.H)),
	)
	if len(n.Props) > 0 {
		props := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range n.Props {
			props.Content = append(props.Content, scalar(p.Name), scalar(p.Value))
		}
		m.Content = append(m.Content, scalar("props"), props)
	}
	if len(n.Children) > 0 {
		kids := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range n.Children {
			kids.Content = append(kids.Content, yamlNode(c))
		}
		m.Content = append(m.Content, scalar("children"), kids)
	}
	return m
}
