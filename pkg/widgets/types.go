package widgets

import "strconv"

// Type is a widget type code as stored in UI descriptions.
type Type uint16

// Type codes. The numeric values are part of the binary description format.
const (
	TypeNone Type = iota
	TypeWindow
	TypeToolBar
	TypeDialog
	TypePopup
	TypeSprite
	TypeKeyboard
	TypeDND
	TypeLabel
	TypeButton
	TypeImage
	TypeEdit
	TypeProgressBar
	TypeGroupBox
	TypeCheckButton
	TypeRadioButton
	TypeDialogTitle
	TypeDialogClient
)

var typeNames = [...]string{
	TypeNone:         "none",
	TypeWindow:       "window",
	TypeToolBar:      "tool_bar",
	TypeDialog:       "dialog",
	TypePopup:        "popup",
	TypeSprite:       "sprite",
	TypeKeyboard:     "keyboard",
	TypeDND:          "dnd",
	TypeLabel:        "label",
	TypeButton:       "button",
	TypeImage:        "image",
	TypeEdit:         "edit",
	TypeProgressBar:  "progress_bar",
	TypeGroupBox:     "group_box",
	TypeCheckButton:  "check_button",
	TypeRadioButton:  "radio_button",
	TypeDialogTitle:  "dialog_title",
	TypeDialogClient: "dialog_client",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// ParseType maps a type name to its code.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name && Type(i) != TypeNone {
			return Type(i), true
		}
	}
	return TypeNone, false
}

// TypeNames returns every known type name except "none", in code order.
func TypeNames() []string {
	out := make([]string, 0, len(typeNames)-1)
	for _, n := range typeNames[1:] {
		out = append(out, n)
	}
	return out
}
