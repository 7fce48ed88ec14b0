package relocate

import (
	"ferry/internal/fsys"
	"fmt"
	"path/filepath"
)

// Clone copies src to dst, creating missing containers. With Into, dst is
// the directory that receives a copy named after src.
func (e *Engine) Clone(src, dst string, opts ...Option) (*Result, error) {
	o := collect(opts)
	force := e.resolveForce(o.force)

	src = fsys.Abs(src)
	kind := e.fs.Kind(src)
	if kind == fsys.KindMissing {
		return nil, pathError("clone", src, ErrSrcNotFound)
	}

	target := targetPath(src, dst, o.into)
	if target != src {
		if _, inside := fsys.Rel(target, src); inside {
			return nil, pathError("clone", target, ErrDstInsideSrc)
		}
	}

	if kind == fsys.KindDir {
		return e.cloneDir(src, target, force)
	}
	return e.cloneFile(src, target, force)
}

func (e *Engine) cloneDir(src, target string, force bool) (*Result, error) {
	if e.fs.IsFile(target) && !force {
		return nil, pathError("clone", target, ErrTypeConflict)
	}

	if _, err := e.fs.MakeDir(target, force); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", target, err)
	}

	return e.merge(src, target, false, force)
}

func (e *Engine) cloneFile(src, target string, force bool) (*Result, error) {
	if e.fs.IsDir(target) {
		if !force {
			return nil, pathError("clone", target, ErrTypeConflict)
		}
		if err := e.fs.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", target, err)
		}
	}

	if _, err := e.fs.MakeParents(target, force); err != nil {
		return nil, fmt.Errorf("failed to create parents of %s: %w", target, err)
	}

	if err := e.fs.CopyFile(src, target); err != nil {
		return nil, fmt.Errorf("failed to copy %s: %w", src, err)
	}

	return NewResult(target), nil
}

func targetPath(src, dst string, into bool) string {
	if into {
		return filepath.Join(fsys.Abs(dst), filepath.Base(src))
	}
	return fsys.Abs(dst)
}
