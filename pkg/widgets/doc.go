// Package widgets is the widget-class library the UI builder instantiates.
//
// Widgets live in a [Tree], an arena addressed by [Handle]. Each node stores
// its type, its rectangle relative to its parent, a parent handle, ordered
// children and a map of typed properties. The tree owns every node; nothing
// is freed individually.
//
// # Creating Widgets
//
// One factory exists per supported type, all with the same shape:
//
//	tree := widgets.NewTree()
//	win, _ := widgets.CreateWindow(tree, widgets.None, 0, 0, 320, 480)
//	ok, _ := widgets.CreateButton(tree, win, 10, 10, 80, 30)
//	tree.SetProp(ok, widgets.PropText, value.Text("OK"))
//
// [CreateDialog] also creates a title bar and a client area; children of a
// dialog are expected under [Tree.DialogClient].
//
// # Properties
//
// [Tree.SetProp] is generic: any key, any [value.Value]. The builder decides
// the value type per key ("text" becomes UTF-16 text, alignments become
// integers from [FindAlignH] and [FindAlignV], everything else is a string).
package widgets
