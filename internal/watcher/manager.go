package watcher

import (
	"ferry/internal/config"
	"ferry/internal/logger"
	"ferry/internal/model"
	"ferry/internal/pipeline"
	"ferry/internal/relocate"
	"ferry/internal/repository"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager runs any number of inboxes, each with its own watcher.
type Manager struct {
	mu      sync.RWMutex
	nextID  uint
	inboxes map[uint]*State
	cfg     *config.Config
	engine  *relocate.Engine
	history *repository.HistoryRepository
}

func NewManager(cfg *config.Config, engine *relocate.Engine, history *repository.HistoryRepository) *Manager {
	return &Manager{
		inboxes: make(map[uint]*State),
		cfg:     cfg,
		engine:  engine,
		history: history,
	}
}

// Start begins moving entries that appear in src into dst.
func (m *Manager) Start(src, dst string) (model.InboxSnapshot, error) {
	inbox, err := NewInbox(src, dst, m.engine, m.history)
	if err != nil {
		return model.InboxSnapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, state := range m.inboxes {
		if state.Src == inbox.src {
			return model.InboxSnapshot{}, fmt.Errorf("inbox %s already watched by %d", inbox.src, state.ID)
		}
	}

	w, err := New(inbox.src, m.cfg.IgnoreList, m.cfg.BufferSize)
	if err != nil {
		return model.InboxSnapshot{}, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return model.InboxSnapshot{}, err
	}

	m.nextID++
	state := NewState(m.nextID, inbox.src, inbox.dst)
	m.inboxes[state.ID] = state
	go m.run(state, w, inbox)

	logger.Log.Info("inbox started",
		zap.Uint("id", state.ID),
		zap.String("src", state.Src),
		zap.String("dst", state.Dst))

	return state.Snapshot(), nil
}

func (m *Manager) run(state *State, w *Watcher, inbox *Inbox) {
	var deliveryCh <-chan Delivery

	defer func() {
		w.Stop()
		go func() {
			for range deliveryCh {
			}
		}()

		m.mu.Lock()
		delete(m.inboxes, state.ID)
		m.mu.Unlock()

		logger.Log.Info("inbox stopped",
			zap.Uint("id", state.ID))
	}()

	delay := time.Duration(m.cfg.DebounceMS) * time.Millisecond
	deliveryCh = inbox.Run(pipeline.Debounce(w.Events(), delay))

	for {
		select {
		case d, ok := <-deliveryCh:
			if !ok {
				return
			}
			state.Record(d)

		case <-state.StopCh:
			return
		}
	}
}

func (m *Manager) Stop(id uint) error {
	m.mu.RLock()
	state, exists := m.inboxes[id]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("inbox %d not found", id)
	}

	select {
	case state.StopCh <- struct{}{}:
	default:
	}
	return nil
}

func (m *Manager) StopAll() {
	m.mu.RLock()
	ids := make([]uint, 0, len(m.inboxes))
	for id := range m.inboxes {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		_ = m.Stop(id)
	}
}

func (m *Manager) Snapshots() []model.InboxSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snaps := make([]model.InboxSnapshot, 0, len(m.inboxes))
	for _, state := range m.inboxes {
		snaps = append(snaps, state.Snapshot())
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID < snaps[j].ID })
	return snaps
}
