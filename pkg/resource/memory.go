package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MemoryStore holds resources in memory. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[key][]byte
}

// Add stores data under typ and name, replacing any previous value.
func (s *MemoryStore) Add(typ Type, name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = make(map[key][]byte)
	}
	s.items[key{typ, name}] = data
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, typ Type, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.items[key{typ, name}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, typ, name)
	}
	return data, nil
}

// Chain tries each store in order and returns the first hit.
type Chain []Store

// Load implements Store.
func (c Chain) Load(ctx context.Context, typ Type, name string) ([]byte, error) {
	for _, s := range c {
		data, err := s.Load(ctx, typ, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s %q", ErrNotFound, typ, name)
}
