package clipboard

import (
	"ferry/internal/model"
	"sync"
)

// Store keeps marks in the order they were added.
type Store interface {
	Add(kind model.MarkKind, paths ...string) error
	List() ([]model.Mark, error)
	Clear() error
}

// MemoryStore keeps marks for the life of the process.
type MemoryStore struct {
	mu    sync.Mutex
	marks []model.Mark
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(kind model.MarkKind, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range paths {
		s.marks = append(s.marks, model.Mark{Path: p, Kind: kind})
	}
	return nil
}

func (s *MemoryStore) List() ([]model.Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Mark, len(s.marks))
	copy(out, s.marks)
	return out, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.marks = nil
	return nil
}
