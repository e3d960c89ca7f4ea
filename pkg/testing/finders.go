package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/uiloader/pkg/widgets"
)

// Finder locates widgets in a tree.
type Finder interface {
	// Evaluate returns all matching widgets under root (depth-first pre-order).
	Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	tree    *widgets.Tree
	handles []widgets.Handle
	finder  Finder
}

// Find evaluates f under root.
func Find(tree *widgets.Tree, root widgets.Handle, f Finder) FinderResult {
	return FinderResult{tree: tree, handles: f.Evaluate(tree, root), finder: f}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() widgets.Handle {
	if len(r.handles) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.describe()))
	}
	return r.handles[0]
}

// FirstOrNone returns the first match, or widgets.None if none.
func (r FinderResult) FirstOrNone() widgets.Handle {
	if len(r.handles) == 0 {
		return widgets.None
	}
	return r.handles[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) widgets.Handle {
	if index < 0 || index >= len(r.handles) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.handles), r.describe()))
	}
	return r.handles[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []widgets.Handle {
	return r.handles
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.handles)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.handles) > 0
}

// Type returns the type of the first match. Panics if no matches.
func (r FinderResult) Type() widgets.Type {
	return r.tree.Type(r.First())
}

// Text returns the text of the first match. Panics if no matches.
func (r FinderResult) Text() string {
	return r.tree.Text(r.First())
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

type typeFinder struct {
	typ widgets.Type
}

func (f *typeFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	return collectMatches(tree, root, func(h widgets.Handle) bool {
		return tree.Type(h) == f.typ
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typ)
}

// ByType returns a finder that matches widgets of type typ.
func ByType(typ widgets.Type) Finder {
	return &typeFinder{typ: typ}
}

type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	return collectMatches(tree, root, func(h widgets.Handle) bool {
		_, ok := tree.Prop(h, widgets.PropText)
		return ok && tree.Text(h) == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches widgets whose "text" property
// equals text exactly.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	return collectMatches(tree, root, func(h widgets.Handle) bool {
		_, ok := tree.Prop(h, widgets.PropText)
		return ok && strings.Contains(tree.Text(h), f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches widgets whose "text"
// property contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

type propFinder struct {
	key, value string
}

func (f *propFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	return collectMatches(tree, root, func(h widgets.Handle) bool {
		v, ok := tree.Prop(h, f.key)
		return ok && v.String() == f.value
	})
}

func (f *propFinder) Description() string {
	return fmt.Sprintf("ByProp(%s=%q)", f.key, f.value)
}

// ByProp returns a finder that matches widgets whose property key renders
// as value. Integer properties compare by their decimal form.
func ByProp(key, value string) Finder {
	return &propFinder{key: key, value: value}
}

type predicateFinder struct {
	fn   func(*widgets.Tree, widgets.Handle) bool
	desc string
}

func (f *predicateFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	return collectMatches(tree, root, func(h widgets.Handle) bool { return f.fn(tree, h) })
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(*widgets.Tree, widgets.Handle) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds widgets matching 'matching' that are descendants
// of widgets matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	var results []widgets.Handle
	seen := make(map[widgets.Handle]bool)
	for _, ancestor := range f.of.Evaluate(tree, root) {
		// Search each child subtree, skipping the ancestor itself.
		for _, child := range tree.Children(ancestor) {
			for _, match := range f.matching.Evaluate(tree, child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying 'matching'
// that are descendants of widgets matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds widgets matching 'matching' that are ancestors of
// widgets matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(tree *widgets.Tree, root widgets.Handle) []widgets.Handle {
	descendants := f.of.Evaluate(tree, root)
	if len(descendants) == 0 {
		return nil
	}
	var results []widgets.Handle
	for _, candidate := range f.matching.Evaluate(tree, root) {
		for _, d := range descendants {
			if isAncestorOf(tree, candidate, d) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches widgets satisfying 'matching'
// that are ancestors of widgets matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// isAncestorOf walks up from descendant using parent handles.
func isAncestorOf(tree *widgets.Tree, ancestor, descendant widgets.Handle) bool {
	for p := tree.Parent(descendant); p != widgets.None; p = tree.Parent(p) {
		if p == ancestor {
			return true
		}
	}
	return false
}

// collectMatches performs depth-first pre-order traversal, collecting
// widgets that satisfy the predicate.
func collectMatches(tree *widgets.Tree, root widgets.Handle, predicate func(widgets.Handle) bool) []widgets.Handle {
	var results []widgets.Handle
	tree.Walk(root, func(h widgets.Handle, _ int) bool {
		if predicate(h) {
			results = append(results, h)
		}
		return true
	})
	return results
}
