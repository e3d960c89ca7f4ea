// Package resource resolves named assets (UI descriptions, images, ...) and
// shares loaded data between users through reference counting.
package resource

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no store holds the requested resource.
var ErrNotFound = errors.New("resource: not found")

// Type is a resource category. Names are unique within a type.
type Type uint8

const (
	TypeNone Type = iota
	TypeUI
	TypeImage
	TypeTheme
	TypeFont
	TypeStrings
	TypeData
)

var typeNames = [...]string{
	TypeNone:    "none",
	TypeUI:      "ui",
	TypeImage:   "image",
	TypeTheme:   "theme",
	TypeFont:    "font",
	TypeStrings: "strings",
	TypeData:    "data",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// ParseType maps a type name to its Type.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name && Type(i) != TypeNone {
			return Type(i), true
		}
	}
	return TypeNone, false
}

// Info is a loaded resource. Data is shared by every holder of a reference
// and must not be modified.
type Info struct {
	Type Type
	Name string
	Data []byte
}

// Size returns len(Data).
func (i *Info) Size() int { return len(i.Data) }

// Store loads raw resource data. Implementations return an error wrapping
// ErrNotFound for resources they do not hold.
type Store interface {
	Load(ctx context.Context, typ Type, name string) ([]byte, error)
}

type key struct {
	typ  Type
	name string
}

type entry struct {
	info *Info
	refs int
}

// Manager hands out shared references to resources loaded from a Store.
// A resource stays cached while at least one reference is held.
//
// Manager is safe for concurrent use.
type Manager struct {
	store Store
	log   *zap.Logger

	mu    sync.Mutex
	cache map[key]*entry
}

// NewManager returns a manager reading from store. A nil logger is replaced
// with a no-op logger.
func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log, cache: make(map[key]*entry)}
}

// Ref is RefContext with a background context.
func (m *Manager) Ref(typ Type, name string) (*Info, error) {
	return m.RefContext(context.Background(), typ, name)
}

// RefContext returns the resource and takes a reference to it. Callers
// must release it with Unref.
func (m *Manager) RefContext(ctx context.Context, typ Type, name string) (*Info, error) {
	k := key{typ, name}

	m.mu.Lock()
	if e, ok := m.cache[k]; ok {
		e.refs++
		m.mu.Unlock()
		return e.info, nil
	}
	m.mu.Unlock()

	if m.store == nil {
		return nil, ErrNotFound
	}
	data, err := m.store.Load(ctx, typ, name)
	if err != nil {
		m.log.Debug("resource load failed", zap.Stringer("type", typ), zap.String("name", name), zap.Error(err))
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another caller may have loaded it meanwhile; keep the first copy.
	if e, ok := m.cache[k]; ok {
		e.refs++
		return e.info, nil
	}
	info := &Info{Type: typ, Name: name, Data: data}
	m.cache[k] = &entry{info: info, refs: 1}
	m.log.Debug("resource loaded", zap.Stringer("type", typ), zap.String("name", name), zap.Int("size", len(data)))
	return info, nil
}

// Unref releases a reference taken by Ref. The resource is dropped from the
// cache when its last reference goes. Unref of nil or of an info the
// manager does not hold is a no-op.
func (m *Manager) Unref(info *Info) {
	if info == nil {
		return
	}
	k := key{info.Type, info.Name}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cache[k]
	if !ok || e.info != info {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(m.cache, k)
	}
}

// Refs returns the number of live references to a resource.
func (m *Manager) Refs(typ Type, name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.cache[key{typ, name}]; ok {
		return e.refs
	}
	return 0
}

// Cached returns the number of resources currently held.
func (m *Manager) Cached() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}
