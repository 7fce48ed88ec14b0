package relocate

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"fmt"

	"go.uber.org/zap"
)

// Move relocates src to dst. A plain rename is used whenever it is enough;
// moving a directory onto an existing directory merges the two.
func (e *Engine) Move(src, dst string, opts ...Option) (*Result, error) {
	o := collect(opts)
	force := e.resolveForce(o.force)

	src = fsys.Abs(src)
	kind := e.fs.Kind(src)
	if kind == fsys.KindMissing {
		return nil, pathError("move", src, ErrSrcNotFound)
	}

	target := targetPath(src, dst, o.into)
	res := NewResult(target)
	if target == src {
		return res, nil
	}

	if _, inside := fsys.Rel(target, src); inside {
		return nil, pathError("move", target, ErrDstInsideSrc)
	}

	switch e.fs.Kind(target) {
	case fsys.KindMissing:
		if _, err := e.fs.MakeParents(target, force); err != nil {
			return nil, fmt.Errorf("failed to create parents of %s: %w", target, err)
		}

	case fsys.KindFile:
		if kind == fsys.KindDir && !force {
			return nil, pathError("move", target, ErrTypeConflict)
		}
		if err := e.fs.Remove(target); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", target, err)
		}

	case fsys.KindDir:
		if kind == fsys.KindDir {
			return e.merge(src, target, true, force)
		}

		if !force {
			return nil, pathError("move", target, ErrTypeConflict)
		}
		if err := e.fs.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", target, err)
		}
	}

	if err := e.rename(src, target, force, res); err != nil {
		return nil, err
	}
	return res, nil
}

// rename never replaces a directory. Across devices it falls back to a
// copying move.
func (e *Engine) rename(src, dst string, force bool, res *Result) error {
	if e.fs.IsDir(dst) {
		return pathError("rename", dst, ErrTypeConflict)
	}

	err := e.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !fsys.IsCrossDevice(err) {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}

	logger.Log.Debug("cross-device move, copying",
		zap.String("src", src),
		zap.String("dst", dst))

	if !e.fs.IsDir(src) {
		return e.fs.MoveFile(src, dst)
	}

	if err := e.fs.Mkdir(dst); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	merged, err := e.merge(src, dst, true, force)
	if err != nil {
		return err
	}
	res.Absorb(merged)
	return nil
}
