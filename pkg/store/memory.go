package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/roomgen/pkg/dungeon"
)

// MemoryStore keeps snapshots in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	dungeons map[string]*dungeon.Dungeon
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{dungeons: make(map[string]*dungeon.Dungeon)}
}

func (s *MemoryStore) Put(_ context.Context, d *dungeon.Dungeon) (string, error) {
	id := d.EnsureID()
	cp := *d
	s.mu.Lock()
	s.dungeons[id] = &cp
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*dungeon.Dungeon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dungeons[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.dungeons))
	for _, d := range s.dungeons {
		out = append(out, Summarize(d))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out[:min(len(out), listLimit(limit))], nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dungeons[id]; !ok {
		return ErrNotFound
	}
	delete(s.dungeons, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
