package widgets

import (
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/value"
)

// DialogTitleHeight is the height of the title bar every dialog creates.
const DialogTitleHeight = 30

// Factory creates one widget of a fixed type under parent.
type Factory func(t *Tree, parent Handle, x, y, w, h int) (Handle, error)

func rect(x, y, w, h int) layout.Rect { return layout.Rect{X: x, Y: y, W: w, H: h} }

// CreateWindow creates a normal top-level window.
func CreateWindow(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	return t.New(TypeWindow, parent, rect(x, y, w, h))
}

// CreateDialog creates a dialog with a title bar and a client area below it.
// Children described inside a dialog belong in the client area; see
// Tree.DialogClient.
func CreateDialog(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	dlg, err := t.New(TypeDialog, parent, rect(x, y, w, h))
	if err != nil {
		return None, err
	}
	titleH := min(DialogTitleHeight, max(h, 0))
	if _, err := t.New(TypeDialogTitle, dlg, rect(0, 0, w, titleH)); err != nil {
		return None, err
	}
	client, err := t.New(TypeDialogClient, dlg, rect(0, titleH, w, max(h-titleH, 0)))
	if err != nil {
		return None, err
	}
	t.nodes[dlg].client = client
	return dlg, nil
}

// CreateImage creates an image widget. The image itself is named by the
// "image" property.
func CreateImage(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	return t.New(TypeImage, parent, rect(x, y, w, h))
}

// CreateButton creates a push button.
func CreateButton(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	return t.New(TypeButton, parent, rect(x, y, w, h))
}

// CreateLabel creates a text label.
func CreateLabel(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	return t.New(TypeLabel, parent, rect(x, y, w, h))
}

// CreateProgressBar creates a progress bar at value 0.
func CreateProgressBar(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	pb, err := t.New(TypeProgressBar, parent, rect(x, y, w, h))
	if err != nil {
		return None, err
	}
	return pb, t.SetProp(pb, PropValue, value.Int(0))
}

// CreateGroupBox creates a group box container.
func CreateGroupBox(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	return t.New(TypeGroupBox, parent, rect(x, y, w, h))
}

// CreateCheckButton creates an unchecked check button.
func CreateCheckButton(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	cb, err := t.New(TypeCheckButton, parent, rect(x, y, w, h))
	if err != nil {
		return None, err
	}
	return cb, t.SetProp(cb, PropValue, value.Int(0))
}

// CreateRadioButton creates an unchecked check button in radio mode.
func CreateRadioButton(t *Tree, parent Handle, x, y, w, h int) (Handle, error) {
	rb, err := t.New(TypeRadioButton, parent, rect(x, y, w, h))
	if err != nil {
		return None, err
	}
	if err := t.SetProp(rb, PropValue, value.Int(0)); err != nil {
		return None, err
	}
	return rb, t.SetProp(rb, PropRadio, value.Int(1))
}
