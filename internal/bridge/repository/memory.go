package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
)

// MemoryStore keeps each partition as a slice sorted by ID. Used by unit
// tests and as the zero-config backend.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[string][]*bridge.Bridge
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{partitions: make(map[string][]*bridge.Bridge)}
}

func byID(b *bridge.Bridge, id string) int {
	return strings.Compare(b.ID, id)
}

func (m *MemoryStore) Get(_ context.Context, pk, id string) (*bridge.Bridge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.partitions[pk]
	i, ok := slices.BinarySearchFunc(items, id, byID)
	if !ok {
		return nil, ErrNotFound
	}
	return clone(items[i]), nil
}

func (m *MemoryStore) Put(_ context.Context, pk string, b *bridge.Bridge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.partitions[pk]
	i, ok := slices.BinarySearchFunc(items, b.ID, byID)
	if ok {
		items[i] = clone(b)
		return nil
	}
	m.partitions[pk] = slices.Insert(items, i, clone(b))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, pk, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.partitions[pk]
	i, ok := slices.BinarySearchFunc(items, id, byID)
	if !ok {
		return ErrNotFound
	}
	m.partitions[pk] = slices.Delete(items, i, i+1)
	return nil
}

func (m *MemoryStore) Query(_ context.Context, pk string, r pager.Range) ([]*bridge.Bridge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.partitions[pk]

	// [lo, hi) is the window strictly between the bounds.
	lo, hi := 0, len(items)
	if r.GT != "" {
		i, found := slices.BinarySearchFunc(items, r.GT, byID)
		if found {
			i++
		}
		lo = i
	}
	if r.LT != "" {
		hi, _ = slices.BinarySearchFunc(items, r.LT, byID)
	}
	if lo >= hi {
		return []*bridge.Bridge{}, nil
	}

	n := hi - lo
	if r.Limit > 0 {
		n = min(n, r.Limit)
	}
	out := make([]*bridge.Bridge, 0, n)
	if r.Reverse {
		for i := hi - 1; i >= lo && len(out) < n; i-- {
			out = append(out, clone(items[i]))
		}
	} else {
		for i := lo; i < hi && len(out) < n; i++ {
			out = append(out, clone(items[i]))
		}
	}
	return out, nil
}

// Len reports the number of items stored under pk.
func (m *MemoryStore) Len(pk string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.partitions[pk])
}

func clone(b *bridge.Bridge) *bridge.Bridge {
	c := *b
	if b.Description != nil {
		d := *b.Description
		c.Description = &d
	}
	if b.CreatedBy != nil {
		cb := *b.CreatedBy
		c.CreatedBy = &cb
	}
	return &c
}
