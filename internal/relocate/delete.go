package relocate

import (
	"ferry/internal/fsys"
	"fmt"
	"io/fs"
	"os"
)

// Delete removes every path, directories recursively. It never stops early;
// each path that could not be removed is a Failure.
func (e *Engine) Delete(paths ...string) *Result {
	res := NewResult("")

	for _, path := range paths {
		path = fsys.Abs(path)

		switch e.fs.Kind(path) {
		case fsys.KindMissing:
			res.Fail(path, false, pathError("delete", path, fs.ErrNotExist))
		case fsys.KindDir:
			if err := e.fs.RemoveAll(path); err != nil {
				res.Fail(path, true, err)
			}
		default:
			if err := e.fs.Remove(path); err != nil {
				res.Fail(path, false, err)
			}
		}
	}

	return res
}

// MakeDir ensures path is a directory, creating parents. It reports whether
// anything was created.
func (e *Engine) MakeDir(path string, opts ...Option) (bool, error) {
	o := collect(opts)
	return e.fs.MakeDir(path, e.resolveForce(o.force))
}

// Touch creates an empty file at path, creating parents. An existing file is
// left alone unless clear is set, in which case it is truncated. It reports
// whether the file was created.
func (e *Engine) Touch(path string, clear bool, opts ...Option) (bool, error) {
	o := collect(opts)
	force := e.resolveForce(o.force)
	path = fsys.Abs(path)
	base := e.fs.Afero()

	switch e.fs.Kind(path) {
	case fsys.KindFile:
		if !clear {
			return false, nil
		}
		f, err := base.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
		if err != nil {
			return false, fmt.Errorf("failed to clear %s: %w", path, err)
		}
		return false, f.Close()

	case fsys.KindDir:
		if !force {
			return false, pathError("touch", path, ErrTypeConflict)
		}
		if err := e.fs.RemoveAll(path); err != nil {
			return false, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	if _, err := e.fs.MakeParents(path, force); err != nil {
		return false, fmt.Errorf("failed to create parents of %s: %w", path, err)
	}

	f, err := base.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return true, nil
}
