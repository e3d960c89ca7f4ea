package testing

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/uiloader/pkg/widgets"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the structure of a built widget tree. It is stored as
// YAML so golden files read like the descriptions that produced them.
type Snapshot struct {
	Root *SnapshotNode `yaml:"root"`
}

// SnapshotNode represents one widget in a serialized tree. Bounds are
// x, y, w, h relative to the parent.
type SnapshotNode struct {
	ID       string            `yaml:"id"`
	Type     string            `yaml:"type"`
	Bounds   [4]int            `yaml:"bounds,flow"`
	Props    map[string]string `yaml:"props,omitempty"`
	Children []*SnapshotNode   `yaml:"children,omitempty"`
}

// CaptureSnapshot captures the subtree under root. IDs are stable across
// builds: "button#0", "button#1" in traversal order.
func CaptureSnapshot(tree *widgets.Tree, root widgets.Handle) *Snapshot {
	if !tree.Valid(root) {
		return &Snapshot{}
	}
	return &Snapshot{Root: captureNode(tree, root, &typeCounter{})}
}

// CaptureSnapshot captures the tree of the last build.
func (u *UITester) CaptureSnapshot() *Snapshot {
	return CaptureSnapshot(u.tree, u.Root())
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When UIBUILD_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("UIBUILD_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: UIBUILD_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: UIBUILD_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

// typeCounter assigns stable IDs like "label#0", "label#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureNode(tree *widgets.Tree, h widgets.Handle, counter *typeCounter) *SnapshotNode {
	typeName := tree.Type(h).String()
	b := tree.Bounds(h)
	node := &SnapshotNode{
		ID:     counter.next(typeName),
		Type:   typeName,
		Bounds: [4]int{b.X, b.Y, b.W, b.H},
	}
	if names := tree.PropNames(h); len(names) > 0 {
		node.Props = make(map[string]string, len(names))
		for _, name := range names {
			v, _ := tree.Prop(h, name)
			node.Props[name] = v.String()
		}
	}
	for _, c := range tree.Children(h) {
		node.Children = append(node.Children, captureNode(tree, c, counter))
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff lists the lines that differ, numbered from 1. Lines are compared
// position by position; snapshots of the same description keep their
// shape, so this stays readable for the usual property changes.
func lineDiff(expected, actual string) string {
	exp := strings.Split(strings.TrimSuffix(expected, "\n"), "\n")
	act := strings.Split(strings.TrimSuffix(actual, "\n"), "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")
	for i := range max(len(exp), len(act)) {
		var e, a string
		haveE, haveA := i < len(exp), i < len(act)
		if haveE {
			e = exp[i]
		}
		if haveA {
			a = act[i]
		}
		if haveE && haveA && e == a {
			continue
		}
		fmt.Fprintf(&buf, "@@ line %d\n", i+1)
		if haveE {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if haveA {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
