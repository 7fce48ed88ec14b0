package relocate

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Merge reconciles the directory src into the directory dst. Both must
// already exist. Files in dst are overwritten, entries only in dst are left
// alone, and per-entry errors end up in the Result.
func (e *Engine) Merge(src, dst string, opts ...Option) (*Result, error) {
	o := collect(opts)
	return e.merge(fsys.Abs(src), fsys.Abs(dst), o.moving, e.resolveForce(o.force))
}

func (e *Engine) merge(src, dst string, moving, force bool) (*Result, error) {
	if !e.fs.IsDir(src) {
		return nil, pathError("merge", src, ErrNotDirectory)
	}
	if !e.fs.IsDir(dst) {
		return nil, pathError("merge", dst, ErrNotDirectory)
	}

	res := NewResult(dst)
	if src == dst {
		return res, nil
	}

	if _, inside := fsys.Rel(dst, src); inside {
		return nil, pathError("merge", dst, ErrDstInsideSrc)
	}

	if _, inside := fsys.Rel(src, dst); inside {
		return e.mergeStaged(src, dst, moving, force, res)
	}

	e.walk(src, dst, moving, force, res)
	return res, nil
}

// mergeStaged handles src living somewhere under dst. The source is renamed
// out of dst first so the walk never reads a tree it is writing to.
func (e *Engine) mergeStaged(src, dst string, moving, force bool, res *Result) (*Result, error) {
	stage := filepath.Join(filepath.Dir(dst), e.namer.NewName())
	if err := e.fs.Rename(src, stage); err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", src, err)
	}

	logger.Log.Debug("source staged outside destination",
		zap.String("src", src),
		zap.String("stage", stage))

	before := len(res.Failures)
	e.walk(stage, dst, moving, force, res)
	walked := len(res.Failures)

	// In move mode walk removes the stage unless something failed to move.
	if e.fs.Exists(stage) {
		e.restore(stage, src, force, res)
	}
	if !e.fs.Exists(stage) {
		rebase(res.Failures[before:walked], stage, src)
	}
	return res, nil
}

// rebase points failures recorded under stage back at src.
func rebase(failures []Failure, stage, src string) {
	for i := range failures {
		if rel, ok := fsys.Rel(failures[i].Path, stage); ok {
			failures[i].Path = filepath.Join(src, rel)
		}
	}
}

// restore puts a staged source back where it came from: the whole tree after
// a clone, whatever could not be moved after a move. Failures from this phase
// are appended to the caller's Result.
func (e *Engine) restore(stage, src string, force bool, res *Result) {
	switch e.fs.Kind(src) {
	case fsys.KindDir:
		back, err := e.merge(stage, src, true, force)
		if err != nil {
			res.Fail(stage, true, err)
			return
		}
		res.Absorb(back)
		return

	case fsys.KindFile:
		if !force {
			res.Fail(stage, true, pathError("restore", src, ErrTypeConflict))
			return
		}
		if err := e.fs.Remove(src); err != nil {
			res.Fail(stage, true, err)
			return
		}
	}

	if err := e.fs.Rename(stage, src); err != nil {
		res.Fail(stage, true, err)
	}
}

// walk copies or moves the tree under src into dst. In move mode the source
// is removed afterwards, or only pruned of empty directories if anything
// failed so no un-moved file is lost.
func (e *Engine) walk(src, dst string, moving, force bool, res *Result) {
	before := len(res.Failures)
	r := resolver{fs: e.fs, force: force}

	e.walkDir(src, dst, moving, r, res)
	if !moving {
		return
	}

	if len(res.Failures) == before {
		if err := e.fs.RemoveAll(src); err != nil {
			res.Fail(src, true, err)
		}
		return
	}

	e.prune(src)
}

func (e *Engine) walkDir(dir, target string, moving bool, r resolver, res *Result) {
	if err := r.ResolveDir(target); err != nil {
		res.Fail(dir, true, err)
		return
	}

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		res.Fail(dir, true, err)
		return
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
			continue
		}
		e.relocateFile(filepath.Join(dir, entry.Name()), filepath.Join(target, entry.Name()), moving, r, res)
	}

	for _, name := range subdirs {
		e.walkDir(filepath.Join(dir, name), filepath.Join(target, name), moving, r, res)
	}
}

func (e *Engine) relocateFile(src, dst string, moving bool, r resolver, res *Result) {
	if err := r.ResolveFile(dst); err != nil {
		res.Fail(src, false, err)
		return
	}

	var err error
	if moving {
		err = e.fs.MoveFile(src, dst)
	} else {
		err = e.fs.CopyFile(src, dst)
	}
	if err != nil {
		res.Fail(src, false, err)
	}
}

// prune removes empty directories under dir, dir included. It reports
// whether dir itself was removed.
func (e *Engine) prune(dir string) bool {
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		return false
	}

	empty := true
	for _, entry := range entries {
		if !entry.IsDir() || !e.prune(filepath.Join(dir, entry.Name())) {
			empty = false
		}
	}
	if !empty {
		return false
	}

	return e.fs.Remove(dir) == nil
}
