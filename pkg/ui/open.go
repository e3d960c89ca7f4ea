// Package ui opens windows and dialogs from UI description resources.
package ui

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/go-drift/uiloader/pkg/builder"
	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/resource"
	"github.com/go-drift/uiloader/pkg/widgets"
)

// Build describes one finished OpenWindow call.
type Build struct {
	// ID identifies the build in log output.
	ID   string
	Name string
	Root widgets.Handle
	// Tree holds the built widgets.
	Tree *widgets.Tree
	// Events is everything the builder did, in order.
	Events []builder.Event
	Err    error
}

// Opener builds widget trees from UI resources. OpenWindow and OpenDialog
// need Resources; every other field is optional.
//
// An Opener may be used from several goroutines as long as each call
// builds into its own Tree.
type Opener struct {
	Resources *resource.Manager
	// Loader parses descriptions. Nil means loader.Default().
	Loader loader.Loader
	// Registry maps type codes to factories. Nil means builder.DefaultRegistry().
	Registry *builder.Registry
	Logger   *zap.Logger
	// Tree receives the widgets. Nil means a new tree per call.
	Tree *widgets.Tree
	// OnBuild, if set, is called after every build that reached the loader.
	OnBuild func(Build)
}

// OpenWindow loads the UI resource called name and builds it. It returns
// the root widget, or widgets.None with an error wrapping
// resource.ErrNotFound when there is no such resource.
//
// A load error after some widgets were created still returns the root, so
// callers can inspect the partial tree.
func (o *Opener) OpenWindow(name string) (widgets.Handle, error) {
	const op = "ui.OpenWindow"
	if o.Resources == nil {
		return widgets.None, fmt.Errorf("%s: no resource manager", op)
	}

	info, err := o.Resources.Ref(resource.TypeUI, name)
	if err != nil {
		return widgets.None, &uierrors.UIError{Op: op, Kind: uierrors.KindResource, Resource: name, Err: err}
	}
	defer o.Resources.Unref(info)

	return o.build(op, name, info.Data)
}

// BuildData builds a description that did not come from the resource
// manager, such as a file named on a command line. name is used for
// reporting only.
func (o *Opener) BuildData(name string, data []byte) (widgets.Handle, error) {
	return o.build("ui.BuildData", name, data)
}

func (o *Opener) build(op, name string, data []byte) (root widgets.Handle, err error) {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	log = log.With(zap.String("build_id", id), zap.String("resource", name))

	tree := o.Tree
	if tree == nil {
		tree = widgets.NewTree()
	}
	b := builder.New(tree, builder.WithRegistry(o.Registry), builder.WithLogger(log))
	ld := o.Loader
	if ld == nil {
		ld = loader.Default()
	}

	defer func() {
		if o.OnBuild != nil {
			o.OnBuild(Build{ID: id, Name: name, Root: root, Tree: tree, Events: b.Events(), Err: err})
		}
	}()
	defer uierrors.RecoverWithCallback(op, func(r any) {
		root = b.Root()
		err = &uierrors.UIError{Op: op, Kind: uierrors.KindPanic, Resource: name, Err: fmt.Errorf("panic: %v", r)}
	})

	log.Debug("loading ui", zap.Int("size", len(data)))
	if lerr := ld.Load(data, b); lerr != nil {
		kind := uierrors.KindBuild
		var pe *uierrors.ParseError
		if errors.As(lerr, &pe) {
			kind = uierrors.KindParsing
		}
		uerr := &uierrors.UIError{Op: op, Kind: kind, Resource: name, Err: lerr, StackTrace: uierrors.CaptureStack()}
		uierrors.Report(uerr)
		err = uerr
	}
	root = b.Root()
	log.Debug("ui built", zap.Uint32("root", uint32(root)), zap.Int("widgets", tree.Len()))
	return root, err
}

// OpenDialog is OpenWindow. The separate name documents intent at call sites.
func (o *Opener) OpenDialog(name string) (widgets.Handle, error) {
	return o.OpenWindow(name)
}
