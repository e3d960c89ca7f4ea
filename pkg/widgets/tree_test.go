package widgets

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/value"
)

func TestTreeNewAndParent(t *testing.T) {
	tree := NewTree()
	win, err := tree.New(TypeWindow, None, layout.Rect{W: 320, H: 480})
	if err != nil {
		t.Fatalf("New window: %v", err)
	}
	btn, err := tree.New(TypeButton, win, layout.Rect{X: 10, Y: 10, W: 80, H: 30})
	if err != nil {
		t.Fatalf("New button: %v", err)
	}

	if tree.Len() != 2 {
		t.Errorf("Len = %d, want 2", tree.Len())
	}
	if tree.Parent(btn) != win {
		t.Errorf("Parent(btn) = %d, want %d", tree.Parent(btn), win)
	}
	if tree.Parent(win) != None {
		t.Errorf("Parent(win) = %d, want None", tree.Parent(win))
	}
	if got := tree.Children(win); !slices.Equal(got, []Handle{btn}) {
		t.Errorf("Children(win) = %v", got)
	}
	if got := tree.Roots(); !slices.Equal(got, []Handle{win}) {
		t.Errorf("Roots = %v", got)
	}
}

func TestTreeRejectsUnknownParent(t *testing.T) {
	tree := NewTree()
	if _, err := tree.New(TypeLabel, Handle(42), layout.Rect{}); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("New with bogus parent: err = %v, want ErrInvalidHandle", err)
	}
	if tree.Len() != 0 {
		t.Errorf("failed New must not add a node, Len = %d", tree.Len())
	}
}

func TestTreeInvalidHandleAccessors(t *testing.T) {
	tree := NewTree()
	if tree.Type(None) != TypeNone || tree.Parent(7) != None || tree.Children(7) != nil {
		t.Error("accessors should return zero values for invalid handles")
	}
	if err := tree.SetProp(None, "x", value.String("y")); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("SetProp(None) err = %v", err)
	}
	if _, ok := tree.Prop(None, "x"); ok {
		t.Error("Prop(None) reported a value")
	}
}

func TestChildrenReturnsCopy(t *testing.T) {
	tree := NewTree()
	win, _ := CreateWindow(tree, None, 0, 0, 100, 100)
	a, _ := CreateLabel(tree, win, 0, 0, 10, 10)
	kids := tree.Children(win)
	kids[0] = 99
	if tree.Children(win)[0] != a {
		t.Error("mutating Children result changed the tree")
	}
}

func TestHandlesSurviveGrowth(t *testing.T) {
	tree := NewTree()
	root, _ := CreateWindow(tree, None, 0, 0, 100, 100)
	first, _ := CreateLabel(tree, root, 1, 2, 3, 4)
	for i := 0; i < 500; i++ {
		if _, err := CreateButton(tree, root, 0, 0, 1, 1); err != nil {
			t.Fatal(err)
		}
	}
	if tree.Parent(first) != root || tree.Bounds(first) != (layout.Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Error("handle lookups changed after the arena grew")
	}
}

func TestPropsAndText(t *testing.T) {
	tree := NewTree()
	lbl, _ := CreateLabel(tree, None, 0, 0, 10, 10)
	if err := tree.SetProp(lbl, PropText, value.Text("héllo")); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetProp(lbl, "style", value.String("big")); err != nil {
		t.Fatal(err)
	}
	if got := tree.Text(lbl); got != "héllo" {
		t.Errorf("Text = %q", got)
	}
	if got := tree.PropNames(lbl); !slices.Equal(got, []string{"style", "text"}) {
		t.Errorf("PropNames = %v", got)
	}
}

func TestWalk(t *testing.T) {
	tree := NewTree()
	win, _ := CreateWindow(tree, None, 0, 0, 100, 100)
	box, _ := CreateGroupBox(tree, win, 0, 0, 50, 50)
	inner, _ := CreateLabel(tree, box, 0, 0, 5, 5)
	btn, _ := CreateButton(tree, win, 0, 0, 5, 5)

	var order []Handle
	var depths []int
	tree.Walk(win, func(h Handle, depth int) bool {
		order = append(order, h)
		depths = append(depths, depth)
		return true
	})
	if !slices.Equal(order, []Handle{win, box, inner, btn}) {
		t.Errorf("walk order = %v", order)
	}
	if !slices.Equal(depths, []int{0, 1, 2, 1}) {
		t.Errorf("walk depths = %v", depths)
	}

	order = order[:0]
	tree.Walk(win, func(h Handle, depth int) bool {
		order = append(order, h)
		return h != box
	})
	if slices.Contains(order, inner) {
		t.Error("returning false should skip children")
	}
}

func TestTypeNames(t *testing.T) {
	for _, name := range TypeNames() {
		typ, ok := ParseType(name)
		if !ok {
			t.Errorf("ParseType(%q) failed", name)
			continue
		}
		if typ.String() != name {
			t.Errorf("Type(%d).String() = %q, want %q", typ, typ.String(), name)
		}
	}
	if _, ok := ParseType("none"); ok {
		t.Error(`ParseType("none") should fail`)
	}
	if _, ok := ParseType("slider"); ok {
		t.Error(`ParseType("slider") should fail`)
	}
	if got := Type(999).String(); got != "type(999)" {
		t.Errorf("unknown type String() = %q", got)
	}
}

func TestAlignTables(t *testing.T) {
	tests := []struct {
		find func(string) (NameValue, bool)
		name string
		want int
		ok   bool
	}{
		{FindAlignH, "left", int(AlignHLeft), true},
		{FindAlignH, "center", int(AlignHCenter), true},
		{FindAlignH, "right", int(AlignHRight), true},
		{FindAlignH, "middle", 0, false},
		{FindAlignH, "Center", 0, false},
		{FindAlignV, "top", int(AlignVTop), true},
		{FindAlignV, "middle", int(AlignVMiddle), true},
		{FindAlignV, "bottom", int(AlignVBottom), true},
		{FindAlignV, "center", 0, false},
	}
	for _, tt := range tests {
		item, ok := tt.find(tt.name)
		if ok != tt.ok || item.Value != tt.want {
			t.Errorf("find(%q) = %+v, %v; want %d, %v", tt.name, item, ok, tt.want, tt.ok)
		}
	}
}
