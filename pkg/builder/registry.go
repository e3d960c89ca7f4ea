package builder

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/go-drift/uiloader/pkg/widgets"
)

// Registry maps widget type codes to factories. It is safe for concurrent
// use, so one registry can be shared by many builders.
type Registry struct {
	mu        sync.RWMutex
	factories map[widgets.Type]widgets.Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[widgets.Type]widgets.Factory)}
}

// DefaultRegistry returns a new registry holding the built-in factories:
// dialog, window, image, button, label, progress bar, group box, check
// button and radio button.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(widgets.TypeDialog, widgets.CreateDialog)
	r.Register(widgets.TypeWindow, widgets.CreateWindow)
	r.Register(widgets.TypeImage, widgets.CreateImage)
	r.Register(widgets.TypeButton, widgets.CreateButton)
	r.Register(widgets.TypeLabel, widgets.CreateLabel)
	r.Register(widgets.TypeProgressBar, widgets.CreateProgressBar)
	r.Register(widgets.TypeGroupBox, widgets.CreateGroupBox)
	r.Register(widgets.TypeCheckButton, widgets.CreateCheckButton)
	r.Register(widgets.TypeRadioButton, widgets.CreateRadioButton)
	return r
}

// Register adds or replaces the factory for typ. A nil factory removes it.
func (r *Registry) Register(typ widgets.Type, f widgets.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f == nil {
		delete(r.factories, typ)
		return
	}
	r.factories[typ] = f
}

// Lookup returns the factory for typ.
func (r *Registry) Lookup(typ widgets.Type) (widgets.Factory, bool) {
	r.mu.RLock()
	f, ok := r.factories[typ]
	r.mu.RUnlock()
	return f, ok
}

// Types returns the registered type codes in ascending order.
func (r *Registry) Types() []widgets.Type {
	r.mu.RLock()
	types := make([]widgets.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	r.mu.RUnlock()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Suggest returns the registered type name closest to name, if one is
// within max(len(name)/3, 2) edits.
func (r *Registry) Suggest(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	best, bestDist := "", max(len(name)/3, 2)+1
	for _, t := range r.Types() {
		candidate := t.String()
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}
