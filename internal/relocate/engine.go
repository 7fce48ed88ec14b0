// Package relocate reconciles directory trees. Merge, Clone and Move handle
// nested source and destination paths, same-path calls and file/folder
// conflicts, and report per-entry failures in a Result instead of aborting.
package relocate

import (
	"ferry/internal/fsys"
	"sync"
)

type Engine struct {
	fs    fsys.FS
	namer fsys.Namer

	mu    sync.RWMutex
	force bool
}

func New(fs fsys.FS, namer fsys.Namer, force bool) *Engine {
	if namer == nil {
		namer = fsys.UUIDNamer{}
	}

	return &Engine{
		fs:    fs,
		namer: namer,
		force: force,
	}
}

func (e *Engine) FS() fsys.FS {
	return e.fs
}

func (e *Engine) SetForce(force bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.force = force
}

func (e *Engine) ForceDefault() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.force
}

// OverrideForce sets the default force mode and returns a func that restores
// the previous one. Intended for use with defer. The override is engine-wide:
// every call on this Engine sees it until restore runs, including calls from
// other goroutines. Use WithForce to pick force for a single call.
func (e *Engine) OverrideForce(force bool) (restore func()) {
	e.mu.Lock()
	prev := e.force
	e.force = force
	e.mu.Unlock()

	return func() {
		e.SetForce(prev)
	}
}

// resolveForce is called once per root call; everything below it inherits
// the answer.
func (e *Engine) resolveForce(f Force) bool {
	switch f {
	case ForceOn:
		return true
	case ForceOff:
		return false
	default:
		return e.ForceDefault()
	}
}
