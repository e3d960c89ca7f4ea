package testing

import (
	"testing"

	"github.com/go-drift/uiloader/pkg/builder"
	"github.com/go-drift/uiloader/pkg/loader"
	"github.com/go-drift/uiloader/pkg/widgets"
)

// UITester builds UI descriptions into a fresh tree and queries the result.
type UITester struct {
	t        *testing.T
	tree     *widgets.Tree
	builder  *builder.Builder
	registry *builder.Registry
}

// NewUITester returns a tester that fails t on build errors.
func NewUITester(t *testing.T) *UITester {
	return &UITester{t: t, tree: widgets.NewTree()}
}

// SetRegistry replaces the factory registry. Must be called before Build.
func (u *UITester) SetRegistry(r *builder.Registry) {
	u.registry = r
}

// Build loads src (YAML or binary) into the tester's tree and returns the
// root widget. Load errors fail the test.
func (u *UITester) Build(src []byte) widgets.Handle {
	u.t.Helper()
	u.builder = builder.New(u.tree, builder.WithRegistry(u.registry))
	if err := loader.Default().Load(src, u.builder); err != nil {
		u.t.Fatalf("build failed: %v", err)
	}
	return u.builder.Root()
}

// BuildYAML is Build for a YAML string.
func (u *UITester) BuildYAML(src string) widgets.Handle {
	u.t.Helper()
	return u.Build([]byte(src))
}

// Tree returns the tree widgets are built into.
func (u *UITester) Tree() *widgets.Tree { return u.tree }

// Root returns the root of the last build, or widgets.None.
func (u *UITester) Root() widgets.Handle {
	if u.builder == nil {
		return widgets.None
	}
	return u.builder.Root()
}

// Events returns the builder events of the last build.
func (u *UITester) Events() []builder.Event {
	if u.builder == nil {
		return nil
	}
	return u.builder.Events()
}

// Find evaluates finder from the root of the last build.
func (u *UITester) Find(finder Finder) FinderResult {
	return Find(u.tree, u.Root(), finder)
}
