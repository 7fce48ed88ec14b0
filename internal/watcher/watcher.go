// Package watcher turns a directory into an inbox: entries that appear in it
// are moved into a destination directory.
package watcher

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"ferry/internal/model"
	"ferry/internal/pipeline"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports activity in an inbox directory per top-level entry. An
// event on root/album/disc1/track.mp3 is emitted for root/album. Entries
// matching the ignore list are never reported, and ignored directories are
// not watched.
type Watcher struct {
	root       string
	ignoreList []string
	fw         *fsnotify.Watcher
	eventCh    chan model.FileEvent
	doneCh     chan struct{}
}

func New(root string, ignoreList []string, bufferSize int) (*Watcher, error) {
	absRoot := fsys.Abs(root)
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("inbox directory not found: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("inbox %s is not a directory", absRoot)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		root:       absRoot,
		ignoreList: ignoreList,
		fw:         fw,
		eventCh:    make(chan model.FileEvent, bufferSize),
		doneCh:     make(chan struct{}),
	}, nil
}

// Start watches the inbox tree. Entries already in the inbox are reported
// as created before any live event.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.run()

	logger.Log.Info("watcher started",
		zap.String("dir", w.root))
	return nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(path) {
			return filepath.SkipDir
		}

		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		logger.Log.Debug("watching directory",
			zap.String("path", path))
		return nil
	})
}

// entry returns the top-level inbox entry containing path.
func (w *Watcher) entry(path string) (string, bool) {
	rel, ok := fsys.Rel(path, w.root)
	if !ok || rel == "." {
		return "", false
	}

	top, _, _ := strings.Cut(rel, string(filepath.Separator))
	return filepath.Join(w.root, top), true
}

func (w *Watcher) ignored(path string) bool {
	rel, ok := fsys.Rel(path, w.root)
	if !ok {
		return true
	}
	return pipeline.Ignored(rel, w.ignoreList)
}

func (w *Watcher) run() {
	defer close(w.eventCh)

	if !w.sweep() {
		return
	}

	for {
		select {
		case <-w.doneCh:
			logger.Log.Info("watcher stopping")
			return

		case fsEvent, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(fsEvent)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			logger.Log.Error("watcher error",
				zap.Error(err))
		}
	}
}

// sweep reports the entries present when the watcher started. It returns
// false if the watcher was stopped meanwhile.
func (w *Watcher) sweep() bool {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		logger.Log.Warn("failed to list inbox",
			zap.String("dir", w.root),
			zap.Error(err))
		return true
	}

	for _, e := range entries {
		path := filepath.Join(w.root, e.Name())
		if w.ignored(path) {
			continue
		}

		select {
		case w.eventCh <- model.FileEvent{Type: model.EventCreate, Path: path, Timestamp: time.Now()}:
		case <-w.doneCh:
			return false
		}
	}
	return true
}

func (w *Watcher) handle(fsEvent fsnotify.Event) {
	var eventType model.EventType
	switch {
	case fsEvent.Op.Has(fsnotify.Create):
		eventType = model.EventCreate
	case fsEvent.Op.Has(fsnotify.Write):
		eventType = model.EventWrite
	default:
		// Removals and renames out of the inbox need no delivery.
		return
	}

	if w.ignored(fsEvent.Name) {
		return
	}

	entry, ok := w.entry(fsEvent.Name)
	if !ok {
		return
	}

	// Folders dropped into the inbox need their subtree watched too, so
	// writes still in progress keep the entry's debounce alive.
	if eventType == model.EventCreate {
		if info, err := os.Stat(fsEvent.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fsEvent.Name); err != nil {
				logger.Log.Warn("failed to watch new directory",
					zap.String("path", fsEvent.Name),
					zap.Error(err))
			}
		}
	}

	event := model.FileEvent{
		Type:      eventType,
		Path:      entry,
		Timestamp: time.Now(),
	}

	select {
	case w.eventCh <- event:
	default:
		logger.Log.Warn("event channel is full, dropping event",
			zap.String("entry", entry))
	}
}

// Events delivers one event per inbox activity, keyed by top-level entry.
func (w *Watcher) Events() <-chan model.FileEvent {
	return w.eventCh
}

func (w *Watcher) Stop() {
	close(w.doneCh)
	_ = w.fw.Close()
}
