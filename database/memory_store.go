package database

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/pos-ledger/models"
)

// MemoryStore is an in-process Store for tests and throwaway terminals.
type MemoryStore struct {
	Origin string

	mu          sync.Mutex
	collections map[string][]byte
	revisions   map[string]int64
	changes     []models.DBChange
	nextID      uint
}

func NewMemoryStore(origin string) *MemoryStore {
	return &MemoryStore{
		Origin:      origin,
		collections: make(map[string][]byte),
		revisions:   make(map[string]int64),
	}
}

func (m *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.collections[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.collections[name] = stored
	m.revisions[name]++
	m.record(name, m.revisions[name])
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[name]; !ok {
		return nil
	}
	delete(m.collections, name)
	m.record(name, 0)
	return nil
}

func (m *MemoryStore) record(name string, revision int64) {
	m.nextID++
	m.changes = append(m.changes, models.DBChange{
		ID:         m.nextID,
		Collection: name,
		Revision:   revision,
		Origin:     m.Origin,
		ChangedAt:  time.Now().UTC(),
	})
}

func (m *MemoryStore) ChangesSince(_ context.Context, afterID uint, limit int) ([]models.DBChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DBChange
	for _, c := range m.changes {
		if c.ID <= afterID {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) LastChangeID(_ context.Context) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.changes) == 0 {
		return 0, nil
	}
	return m.changes[len(m.changes)-1].ID, nil
}

func (m *MemoryStore) PruneChanges(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.changes[:0]
	var pruned int64
	for _, c := range m.changes {
		if c.ChangedAt.Before(before) {
			pruned++
			continue
		}
		kept = append(kept, c)
	}
	m.changes = kept
	return pruned, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }
