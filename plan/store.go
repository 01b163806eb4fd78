package plan

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// =============================================================================
// STORE - Plan storage for the lifetime of the process
// =============================================================================

// Store holds the open plans. Implementations must be safe for concurrent
// use and must not alias stored state with caller-held plans. Plans are
// in-memory scenarios; nothing survives a restart.
type Store interface {
	// Save inserts or replaces a plan by ID.
	Save(ctx context.Context, p *Plan) error

	// Get returns the plan, or nil if it does not exist.
	Get(ctx context.Context, id string) (*Plan, error)

	// List returns all plans, oldest first.
	List(ctx context.Context) ([]*Plan, error)

	// Delete removes a plan. Deleting a missing plan is not an error.
	Delete(ctx context.Context, id string) error
}

// =============================================================================
// MEMORY STORE
// =============================================================================

type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]*Plan
	seq   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]*Plan)}
}

func (m *MemoryStore) Save(_ context.Context, p *Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[p.ID] = p.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (m *MemoryStore) List(_ context.Context) ([]*Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Plan, 0, len(m.plans))
	for _, p := range m.plans {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.plans, id)
	return nil
}

// NextName produces tab-style plan names: "Plan 1", "Plan 2", ...
// The counter only advances, so deleted plans do not recycle names.
func (m *MemoryStore) NextName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("Plan %d", m.seq)
}
