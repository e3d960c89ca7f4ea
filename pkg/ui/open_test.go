package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/go-drift/uiloader/pkg/builder"
	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/resource"
	"github.com/go-drift/uiloader/pkg/widgets"
)

const mainUI = `
widget:
  type: window
  w: 320
  h: 240
  children:
    - type: button
      x: c
      y: m
      w: 80
      h: 30
      props:
        text: OK
`

type countingLoader struct {
	calls int
	next  loader.Loader
}

func (l *countingLoader) Load(data []byte, b loader.Builder) error {
	l.calls++
	return l.next.Load(data, b)
}

type panicLoader struct{}

func (panicLoader) Load([]byte, loader.Builder) error { panic("loader exploded") }

type quietHandler struct {
	panics []*uierrors.PanicError
	errs   []*uierrors.UIError
}

func (h *quietHandler) HandleError(e *uierrors.UIError)       { h.errs = append(h.errs, e) }
func (h *quietHandler) HandlePanic(e *uierrors.PanicError)    { h.panics = append(h.panics, e) }
func (h *quietHandler) HandleBuildError(*uierrors.BuildError) {}

func quiet(t *testing.T) *quietHandler {
	t.Helper()
	h := &quietHandler{}
	t.Cleanup(uierrors.Swap(h))
	return h
}

func newOpener(t *testing.T, resources map[string]string) *Opener {
	t.Helper()
	var store resource.MemoryStore
	for name, data := range resources {
		store.Add(resource.TypeUI, name, []byte(data))
	}
	return &Opener{Resources: resource.NewManager(&store, nil), Tree: widgets.NewTree()}
}

func TestOpenWindowBuildsTree(t *testing.T) {
	o := newOpener(t, map[string]string{"main": mainUI})
	root, err := o.OpenWindow("main")
	if err != nil {
		t.Fatalf("OpenWindow: %v", err)
	}
	tree := o.Tree
	if tree.Type(root) != widgets.TypeWindow {
		t.Fatalf("root type = %v, want window", tree.Type(root))
	}
	kids := tree.Children(root)
	if len(kids) != 1 {
		t.Fatalf("root has %d children, want 1", len(kids))
	}
	if tree.Type(kids[0]) != widgets.TypeButton || tree.Text(kids[0]) != "OK" {
		t.Errorf("child = %v %q, want button \"OK\"", tree.Type(kids[0]), tree.Text(kids[0]))
	}
	if got := o.Resources.Refs(resource.TypeUI, "main"); got != 0 {
		t.Errorf("Refs after OpenWindow = %d, want 0", got)
	}
}

func TestOpenWindowBinary(t *testing.T) {
	doc, err := loader.DecodeYAML([]byte(mainUI))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := loader.Encode(&buf, doc); err != nil {
		t.Fatal(err)
	}
	o := newOpener(t, map[string]string{"main": buf.String()})
	root, err := o.OpenDialog("main")
	if err != nil {
		t.Fatalf("OpenDialog: %v", err)
	}
	if got := len(o.Tree.Children(root)); got != 1 {
		t.Errorf("root has %d children, want 1", got)
	}
}

func TestOpenWindowMissingSkipsLoader(t *testing.T) {
	o := newOpener(t, nil)
	counter := &countingLoader{next: loader.Default()}
	o.Loader = counter
	built := false
	o.OnBuild = func(Build) { built = true }

	root, err := o.OpenWindow("missing")
	if root != widgets.None {
		t.Errorf("root = %d, want None", root)
	}
	if !errors.Is(err, resource.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	var ue *uierrors.UIError
	if !errors.As(err, &ue) || ue.Kind != uierrors.KindResource || ue.Resource != "missing" {
		t.Errorf("err = %#v, want resource UIError", err)
	}
	if counter.calls != 0 {
		t.Errorf("loader called %d times, want 0", counter.calls)
	}
	if built {
		t.Error("OnBuild called for a missing resource")
	}
	if o.Tree.Len() != 0 {
		t.Errorf("tree has %d widgets, want 0", o.Tree.Len())
	}
}

func TestOnBuild(t *testing.T) {
	o := newOpener(t, map[string]string{"main": mainUI})
	var builds []Build
	o.OnBuild = func(b Build) { builds = append(builds, b) }

	o.OpenWindow("main")
	o.OpenWindow("main")
	if len(builds) != 2 {
		t.Fatalf("OnBuild called %d times, want 2", len(builds))
	}
	for _, b := range builds {
		if _, err := uuid.Parse(b.ID); err != nil {
			t.Errorf("build id %q: %v", b.ID, err)
		}
		if b.Name != "main" || b.Err != nil || b.Root == widgets.None {
			t.Errorf("build = %+v", b)
		}
		created := 0
		for _, e := range b.Events {
			if e.Outcome == builder.Created {
				created++
			}
		}
		if created != 2 {
			t.Errorf("build created %d widgets, want 2", created)
		}
	}
	if builds[0].ID == builds[1].ID {
		t.Error("builds share an id")
	}
	if builds[0].Root == builds[1].Root {
		t.Error("second build reused the first root")
	}
}

func TestOpenWindowParseError(t *testing.T) {
	h := quiet(t)
	o := newOpener(t, map[string]string{"broken": "widget:\n  type: window\n  colour: red\n"})
	root, err := o.OpenWindow("broken")
	if root != widgets.None {
		t.Errorf("root = %d, want None", root)
	}
	var ue *uierrors.UIError
	if !errors.As(err, &ue) || ue.Kind != uierrors.KindParsing {
		t.Fatalf("err = %v, want parsing UIError", err)
	}
	if !strings.Contains(ue.StackTrace, "(*Opener).build") {
		t.Errorf("StackTrace = %q, want the build frame", ue.StackTrace)
	}
	if len(h.errs) != 1 {
		t.Errorf("reported %d errors, want 1", len(h.errs))
	}
	if got := o.Resources.Refs(resource.TypeUI, "broken"); got != 0 {
		t.Errorf("Refs after failed load = %d, want 0", got)
	}
}

func TestOpenWindowRecoversPanic(t *testing.T) {
	h := quiet(t)
	o := newOpener(t, map[string]string{"main": mainUI})
	o.Loader = panicLoader{}
	var got Build
	o.OnBuild = func(b Build) { got = b }

	root, err := o.OpenWindow("main")
	if root != widgets.None {
		t.Errorf("root = %d, want None", root)
	}
	var ue *uierrors.UIError
	if !errors.As(err, &ue) || ue.Kind != uierrors.KindPanic {
		t.Fatalf("err = %v, want panic UIError", err)
	}
	if len(h.panics) != 1 || h.panics[0].Op != "ui.OpenWindow" {
		t.Errorf("reported panics = %v", h.panics)
	}
	if got.Err != err {
		t.Errorf("OnBuild saw err %v, want %v", got.Err, err)
	}
	if refs := o.Resources.Refs(resource.TypeUI, "main"); refs != 0 {
		t.Errorf("Refs after panic = %d, want 0", refs)
	}
}

func TestOpenWindowWithoutManager(t *testing.T) {
	if _, err := (&Opener{}).OpenWindow("main"); err == nil {
		t.Error("expected error without resource manager")
	}
}

func TestBuildDataSkipsResources(t *testing.T) {
	var got Build
	o := &Opener{OnBuild: func(b Build) { got = b }}
	root, err := o.BuildData("form.yaml", []byte(mainUI))
	if err != nil {
		t.Fatalf("BuildData: %v", err)
	}
	if got.Tree == nil || got.Tree.Type(root) != widgets.TypeWindow {
		t.Fatalf("Build.Tree does not hold the window root")
	}
	if got.Name != "form.yaml" {
		t.Errorf("Build.Name = %q, want form.yaml", got.Name)
	}
}
