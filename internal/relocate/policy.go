package relocate

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"

	"go.uber.org/zap"
)

// resolver decides what happens when the walk finds the wrong kind of entry
// at a target path.
type resolver struct {
	fs    fsys.FS
	force bool
}

// ResolveDir makes target usable as a directory. Only the leaf is created.
func (r resolver) ResolveDir(target string) error {
	switch r.fs.Kind(target) {
	case fsys.KindDir:
		return nil

	case fsys.KindFile:
		if !r.force {
			return pathError("mkdir", target, ErrTypeConflict)
		}
		if err := r.fs.Remove(target); err != nil {
			return err
		}
		logger.Log.Debug("conflict resolved: file replaced by directory",
			zap.String("path", target))
	}

	return r.fs.Mkdir(target)
}

// ResolveFile clears a directory sitting where a file should go.
func (r resolver) ResolveFile(target string) error {
	if !r.fs.IsDir(target) {
		return nil
	}
	if !r.force {
		return pathError("copy", target, ErrTypeConflict)
	}

	if err := r.fs.RemoveAll(target); err != nil {
		return err
	}
	logger.Log.Debug("conflict resolved: directory replaced by file",
		zap.String("path", target))

	return nil
}
