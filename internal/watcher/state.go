package watcher

import (
	"ferry/internal/model"
	"sync"
	"time"
)

type State struct {
	mu        sync.RWMutex
	ID        uint
	Src       string
	Dst       string
	StartedAt time.Time
	Moved     int
	Failed    int
	LastMove  *time.Time
	StopCh    chan struct{}
}

func NewState(id uint, src, dst string) *State {
	return &State{
		ID:        id,
		Src:       src,
		Dst:       dst,
		StartedAt: time.Now(),
		StopCh:    make(chan struct{}, 1),
	}
}

// Record counts a delivery. Entries moved with some failed children count as
// failed.
func (s *State) Record(d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.LastMove = &now
	if d.Err != nil || !d.Result.OK() {
		s.Failed++
	} else {
		s.Moved++
	}
}

func (s *State) Snapshot() model.InboxSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.InboxSnapshot{
		ID:        s.ID,
		Src:       s.Src,
		Dst:       s.Dst,
		StartedAt: s.StartedAt,
		Moved:     s.Moved,
		Failed:    s.Failed,
		LastMove:  s.LastMove,
	}
}
