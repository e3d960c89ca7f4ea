package builder

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/layout"
	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/widgets"
)

func start(t *testing.T, b *Builder, typ widgets.Type, spec layout.Spec) widgets.Handle {
	t.Helper()
	if err := b.OnWidgetStart(loader.Desc{Type: typ, Layout: spec}); err != nil {
		t.Fatalf("OnWidgetStart(%v): %v", typ, err)
	}
	return b.Current()
}

func end(t *testing.T, b *Builder) {
	t.Helper()
	if err := b.OnWidgetEnd(); err != nil {
		t.Fatalf("OnWidgetEnd: %v", err)
	}
}

func TestStartCreatesEverySupportedType(t *testing.T) {
	types := []widgets.Type{
		widgets.TypeDialog,
		widgets.TypeWindow,
		widgets.TypeImage,
		widgets.TypeButton,
		widgets.TypeLabel,
		widgets.TypeProgressBar,
		widgets.TypeGroupBox,
		widgets.TypeCheckButton,
		widgets.TypeRadioButton,
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			b := New(nil)
			win := start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 400, 300))
			spec := layout.Spec{XAttr: layout.XCenter, YAttr: layout.YBottom, WAttr: layout.WPercent, W: 50, H: 40, Y: 10}
			h := start(t, b, typ, spec)

			if h == widgets.None {
				t.Fatal("no widget created")
			}
			tree := b.Tree()
			if tree.Type(h) != typ {
				t.Errorf("Type = %v, want %v", tree.Type(h), typ)
			}
			if tree.Parent(h) != win {
				t.Errorf("Parent = %d, want %d", tree.Parent(h), win)
			}
			want := layout.Rect{X: 100, Y: 250, W: 200, H: 40}
			if got := tree.Bounds(h); got != want {
				t.Errorf("Bounds = %+v, want %+v", got, want)
			}
		})
	}
}

func TestRootUsesRawGeometry(t *testing.T) {
	b := New(nil)
	spec := layout.Spec{XAttr: layout.XCenter, WAttr: layout.WPercent, X: 5, Y: 7, W: 50, H: -20}
	h := start(t, b, widgets.TypeWindow, spec)
	want := layout.Rect{X: 5, Y: 7, W: 50, H: -20}
	if got := b.Tree().Bounds(h); got != want {
		t.Errorf("root Bounds = %+v, want %+v", got, want)
	}
}

func TestRootIsSetOnce(t *testing.T) {
	b := New(nil)
	if b.Root() != widgets.None {
		t.Fatalf("Root before start = %d", b.Root())
	}
	win := start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 100, 100))
	start(t, b, widgets.TypeButton, layout.Pixels(0, 0, 10, 10))
	end(t, b)
	start(t, b, widgets.TypeLabel, layout.Pixels(0, 0, 10, 10))
	end(t, b)
	end(t, b)
	start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 50, 50))
	if b.Root() != win {
		t.Errorf("Root = %d, want first window %d", b.Root(), win)
	}
}

func TestEndAscendsToParent(t *testing.T) {
	b := New(nil)
	win := start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 100, 100))
	box := start(t, b, widgets.TypeGroupBox, layout.Pixels(0, 0, 50, 50))
	start(t, b, widgets.TypeLabel, layout.Pixels(0, 0, 10, 10))

	end(t, b)
	if b.Current() != box {
		t.Errorf("after closing label Current = %d, want %d", b.Current(), box)
	}
	end(t, b)
	if b.Current() != win {
		t.Errorf("after closing box Current = %d, want %d", b.Current(), win)
	}
	end(t, b)
	if b.Current() != widgets.None {
		t.Errorf("after closing root Current = %d, want None", b.Current())
	}
	if err := b.OnWidgetEnd(); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("extra end: err = %v, want ErrUnbalanced", err)
	}
}

func TestDialogChildrenGoToClient(t *testing.T) {
	b := New(nil)
	win := start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 400, 300))
	dlg := start(t, b, widgets.TypeDialog, layout.Pixels(10, 10, 200, 100))
	client := b.Tree().DialogClient(dlg)
	if client == widgets.None {
		t.Fatal("dialog has no client")
	}

	first := start(t, b, widgets.TypeLabel, layout.Spec{WAttr: layout.WPercent, HAttr: layout.HPercent, W: 50, H: 100})
	if p := b.Tree().Parent(first); p != client {
		t.Errorf("label parent = %d, want client %d", p, client)
	}
	// Geometry comes from the dialog's own size, not the client's.
	if got, want := b.Tree().Bounds(first), (layout.Rect{W: 100, H: 100}); got != want {
		t.Errorf("label Bounds = %+v, want %+v", got, want)
	}
	end(t, b)
	if b.Current() != dlg {
		t.Errorf("after closing dialog child Current = %d, want dialog %d", b.Current(), dlg)
	}

	second := start(t, b, widgets.TypeButton, layout.Pixels(0, 0, 20, 20))
	if p := b.Tree().Parent(second); p != client {
		t.Errorf("second child parent = %d, want client %d", p, client)
	}
	end(t, b)
	end(t, b)
	if b.Current() != win {
		t.Errorf("after closing dialog Current = %d, want window %d", b.Current(), win)
	}

	sibling := start(t, b, widgets.TypeLabel, layout.Pixels(0, 0, 20, 20))
	if p := b.Tree().Parent(sibling); p != win {
		t.Errorf("widget after dialog: parent = %d, want window %d", p, win)
	}
}

func TestTextProperty(t *testing.T) {
	b := New(nil)
	h := start(t, b, widgets.TypeLabel, layout.Pixels(0, 0, 10, 10))

	for _, text := range []string{"", "OK", "héllo, 世界", strings.Repeat("a", widgets.MaxTextLen-1)} {
		if err := b.OnWidgetProp("text", text); err != nil {
			t.Fatalf("text %q: %v", text, err)
		}
		if got := b.Tree().Text(h); got != text {
			t.Errorf("Text = %q, want %q", got, text)
		}
	}

	if err := b.OnWidgetProp("text", "keep"); err != nil {
		t.Fatal(err)
	}
	long := strings.Repeat("a", widgets.MaxTextLen)
	if err := b.OnWidgetProp("text", long); !errors.Is(err, ErrBadParams) {
		t.Errorf("128-byte text: err = %v, want ErrBadParams", err)
	}
	if got := b.Tree().Text(h); got != "keep" {
		t.Errorf("Text after rejected set = %q, want %q", got, "keep")
	}
	// 43 three-byte runes: fewer than 128 characters but 129 bytes.
	if err := b.OnWidgetProp("text", strings.Repeat("界", 43)); !errors.Is(err, ErrBadParams) {
		t.Errorf("129-byte text: err = %v, want ErrBadParams", err)
	}

	events := b.Events()
	last := events[len(events)-1]
	if last.Outcome != Rejected || last.Key != "text" {
		t.Errorf("last event = %v, want rejected text", last)
	}
}

func TestAlignProperties(t *testing.T) {
	b := New(nil)
	h := start(t, b, widgets.TypeButton, layout.Pixels(0, 0, 10, 10))

	if err := b.OnWidgetProp("align_h", "center"); err != nil {
		t.Fatal(err)
	}
	v, ok := b.Tree().Prop(h, "align_h")
	if n, isInt := v.Int(); !ok || !isInt || n != int(widgets.AlignHCenter) {
		t.Errorf("align_h = %v, want %d", v, widgets.AlignHCenter)
	}

	if err := b.OnWidgetProp("align_v", "bottom"); err != nil {
		t.Fatal(err)
	}
	v, _ = b.Tree().Prop(h, "align_v")
	if n, _ := v.Int(); n != int(widgets.AlignVBottom) {
		t.Errorf("align_v = %v, want %d", v, widgets.AlignVBottom)
	}

	if err := b.OnWidgetProp("align_h", "bogus"); err != nil {
		t.Errorf("bogus align_h: err = %v, want nil", err)
	}
	v, _ = b.Tree().Prop(h, "align_h")
	if n, _ := v.Int(); n != int(widgets.AlignHCenter) {
		t.Errorf("align_h changed to %v by bogus name", v)
	}
	if err := b.OnWidgetProp("align_v", "Top"); err != nil {
		t.Error(err)
	}

	counts := b.Counts()
	if counts[SkippedInvalidEnum] != 2 {
		t.Errorf("SkippedInvalidEnum = %d, want 2", counts[SkippedInvalidEnum])
	}
	if counts[PropertySet] != 2 {
		t.Errorf("PropertySet = %d, want 2", counts[PropertySet])
	}
}

func TestOtherPropertiesAreStrings(t *testing.T) {
	b := New(nil)
	h := start(t, b, widgets.TypeImage, layout.Pixels(0, 0, 10, 10))
	if err := b.OnWidgetProp("image", "logo"); err != nil {
		t.Fatal(err)
	}
	if err := b.OnWidgetProp("value", "42"); err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]string{"image": "logo", "value": "42"} {
		v, _ := b.Tree().Prop(h, key)
		if s, ok := v.Str(); !ok || s != want {
			t.Errorf("%s = %v, want string %q", key, v, want)
		}
	}
}

func TestUnsupportedTypeSkipsSubtree(t *testing.T) {
	b := New(nil)
	win := start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 100, 100))

	if err := b.OnWidgetStart(loader.Desc{TypeName: "slider"}); err != nil {
		t.Fatalf("unsupported start: %v", err)
	}
	if b.Current() != widgets.None {
		t.Errorf("Current in skipped node = %d, want None", b.Current())
	}
	if err := b.OnWidgetProp("text", strings.Repeat("x", 500)); err != nil {
		t.Errorf("prop inside skipped node: %v", err)
	}
	b.OnWidgetPropEnd()
	start(t, b, widgets.TypeLabel, layout.Pixels(0, 0, 10, 10))
	end(t, b)
	end(t, b)

	if b.Current() != win {
		t.Errorf("Current after skipped subtree = %d, want %d", b.Current(), win)
	}
	lbl := start(t, b, widgets.TypeLabel, layout.Pixels(0, 0, 10, 10))
	if b.Tree().Parent(lbl) != win {
		t.Errorf("sibling after skipped subtree has parent %d", b.Tree().Parent(lbl))
	}
	if b.Tree().Len() != 2 {
		t.Errorf("tree has %d widgets, want 2", b.Tree().Len())
	}

	counts := b.Counts()
	if counts[SkippedUnsupportedType] != 1 {
		t.Errorf("SkippedUnsupportedType = %d, want 1", counts[SkippedUnsupportedType])
	}
	if counts[SkippedInUnsupported] != 4 {
		t.Errorf("SkippedInUnsupported = %d, want 4", counts[SkippedInUnsupported])
	}
}

func TestUnsupportedRootLeavesNoRoot(t *testing.T) {
	b := New(nil)
	if err := b.OnWidgetStart(loader.Desc{Type: widgets.TypeEdit}); err != nil {
		t.Fatal(err)
	}
	end(t, b)
	if b.Root() != widgets.None {
		t.Errorf("Root = %d, want None", b.Root())
	}
}

func TestPropWithoutWidget(t *testing.T) {
	b := New(nil)
	if err := b.OnWidgetProp("text", "orphan"); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if ev := b.Events(); len(ev) != 1 || ev[0].Outcome != SkippedNoWidget {
		t.Errorf("events = %v", ev)
	}
}

func TestUnsupportedTypeIsLoggedWithSuggestion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(nil, WithLogger(zap.New(core)))
	b.OnWidgetStart(loader.Desc{TypeName: "buton"})

	entries := logs.FilterMessage("unsupported widget type").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["suggest"]; got != "button" {
		t.Errorf("suggest = %v, want button", got)
	}
}

func TestWithRegistryExtends(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register(widgets.TypeEdit, func(tree *widgets.Tree, parent widgets.Handle, x, y, w, h int) (widgets.Handle, error) {
		return tree.New(widgets.TypeEdit, parent, layout.Rect{X: x, Y: y, W: w, H: h})
	})
	b := New(nil, WithRegistry(reg))
	h := start(t, b, widgets.TypeEdit, layout.Pixels(1, 2, 3, 4))
	if b.Tree().Type(h) != widgets.TypeEdit {
		t.Errorf("Type = %v, want edit", b.Tree().Type(h))
	}
}

func TestWithLayout(t *testing.T) {
	var gotW, gotH int
	calc := func(s layout.Spec, pw, ph int) layout.Rect {
		gotW, gotH = pw, ph
		return layout.Rect{X: 1, Y: 2, W: 3, H: 4}
	}
	b := New(nil, WithLayout(calc))
	start(t, b, widgets.TypeWindow, layout.Pixels(0, 0, 640, 480))
	h := start(t, b, widgets.TypeButton, layout.Spec{})
	if gotW != 640 || gotH != 480 {
		t.Errorf("layout got parent %dx%d, want 640x480", gotW, gotH)
	}
	if got := b.Tree().Bounds(h); got != (layout.Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("Bounds = %+v", got)
	}
}

func TestFactoryErrorIsBuildError(t *testing.T) {
	sentinel := errors.New("out of widgets")
	reg := NewRegistry()
	reg.Register(widgets.TypeWindow, func(*widgets.Tree, widgets.Handle, int, int, int, int) (widgets.Handle, error) {
		return widgets.None, sentinel
	})
	b := New(nil, WithRegistry(reg))
	err := b.OnWidgetStart(loader.Desc{Type: widgets.TypeWindow})

	var be *uierrors.BuildError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *BuildError", err)
	}
	if be.Callback != "start" || be.Widget != "window" || !errors.Is(err, sentinel) {
		t.Errorf("BuildError = %+v", be)
	}
	if b.Root() != widgets.None || b.Current() != widgets.None {
		t.Error("failed start moved the cursor")
	}
}

func TestEndToEndYAML(t *testing.T) {
	src := `
widget:
  type: window
  w: 320
  h: 240
  children:
    - type: button
      x: 10
      y: 10
      w: 80
      h: 30
      props:
        text: OK
`
	b := New(nil)
	if err := (loader.YAML{}).Load([]byte(src), b); err != nil {
		t.Fatalf("Load: %v", err)
	}
	tree := b.Tree()
	root := b.Root()
	if tree.Type(root) != widgets.TypeWindow {
		t.Fatalf("root type = %v", tree.Type(root))
	}
	kids := tree.Children(root)
	if len(kids) != 1 {
		t.Fatalf("root has %d children, want 1", len(kids))
	}
	if tree.Type(kids[0]) != widgets.TypeButton {
		t.Errorf("child type = %v, want button", tree.Type(kids[0]))
	}
	if tree.Text(kids[0]) != "OK" {
		t.Errorf("child text = %q, want OK", tree.Text(kids[0]))
	}
	if b.Current() != widgets.None {
		t.Errorf("Current after load = %d, want None", b.Current())
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Op: OpStart, Outcome: Created, Type: widgets.TypeButton, Handle: 2}, "start created button #2"},
		{Event{Op: OpStart, Outcome: SkippedUnsupportedType, TypeName: "slider"}, `start skipped_unsupported_type none "slider"`},
		{Event{Op: OpProp, Outcome: PropertySet, Key: "text", Value: "OK", Handle: 3}, `prop property_set text="OK" #3`},
		{Event{Op: OpEnd, Outcome: Rejected, Err: ErrUnbalanced}, "end rejected: builder: end without open widget"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
