package widgets

// Property names with special handling in the builder.
const (
	PropText   = "text"
	PropAlignV = "align_v"
	PropAlignH = "align_h"
	PropValue  = "value"
	PropRadio  = "radio"
	PropImage  = "image"
	PropName   = "name"
)

// MaxTextLen bounds the UTF-8 byte length of a "text" property value;
// values must be strictly shorter.
const MaxTextLen = 128

// AlignV is a vertical text alignment.
type AlignV int

const (
	AlignVNone AlignV = iota
	AlignVMiddle
	AlignVTop
	AlignVBottom
)

// AlignH is a horizontal text alignment.
type AlignH int

const (
	AlignHNone AlignH = iota
	AlignHCenter
	AlignHLeft
	AlignHRight
)

// NameValue is one entry of a symbolic name table.
type NameValue struct {
	Name  string
	Value int
}

var alignVNames = []NameValue{
	{"top", int(AlignVTop)},
	{"middle", int(AlignVMiddle)},
	{"bottom", int(AlignVBottom)},
}

var alignHNames = []NameValue{
	{"left", int(AlignHLeft)},
	{"center", int(AlignHCenter)},
	{"right", int(AlignHRight)},
}

// FindAlignV looks up a vertical alignment by name.
func FindAlignV(name string) (NameValue, bool) {
	return findName(alignVNames, name)
}

// FindAlignH looks up a horizontal alignment by name.
func FindAlignH(name string) (NameValue, bool) {
	return findName(alignHNames, name)
}

func findName(table []NameValue, name string) (NameValue, bool) {
	for _, item := range table {
		if item.Name == name {
			return item, true
		}
	}
	return NameValue{}, false
}
