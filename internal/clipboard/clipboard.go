// Package clipboard marks paths to be cut or copied and pastes them into a
// directory later, possibly from another process when the store is
// persistent.
package clipboard

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"ferry/internal/model"
	"ferry/internal/relocate"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

type Board struct {
	store  Store
	engine *relocate.Engine
}

func New(store Store, engine *relocate.Engine) *Board {
	return &Board{store: store, engine: engine}
}

// Cut replaces all marks with paths marked for moving.
func (b *Board) Cut(paths ...string) error {
	if err := b.Unmark(); err != nil {
		return err
	}
	return b.AppendCut(paths...)
}

// Copy replaces all marks with paths marked for copying.
func (b *Board) Copy(paths ...string) error {
	if err := b.Unmark(); err != nil {
		return err
	}
	return b.AppendCopy(paths...)
}

func (b *Board) AppendCut(paths ...string) error {
	return b.mark(model.MarkCut, paths)
}

func (b *Board) AppendCopy(paths ...string) error {
	return b.mark(model.MarkCopy, paths)
}

func (b *Board) Unmark() error {
	if err := b.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear marks: %w", err)
	}
	return nil
}

func (b *Board) Marks() ([]model.Mark, error) {
	marks, err := b.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}
	return marks, nil
}

func (b *Board) mark(kind model.MarkKind, paths []string) error {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		abs = append(abs, fsys.Abs(p))
	}

	if err := b.store.Add(kind, abs...); err != nil {
		return fmt.Errorf("failed to mark %s: %w", kind, err)
	}
	return nil
}

// Paste moves cut marks and copies copied marks into dst, cut marks first.
// When root is set, a mark under root keeps its folder structure relative to
// root. Marks that no longer exist are skipped. Marks are cleared afterwards.
func (b *Board) Paste(dst, root string, opts ...relocate.Option) (*relocate.Result, error) {
	marks, err := b.Marks()
	if err != nil {
		return nil, err
	}

	dst = fsys.Abs(dst)
	res := relocate.NewResult(dst)
	opts = append(opts, relocate.Into())

	for _, kind := range []model.MarkKind{model.MarkCut, model.MarkCopy} {
		for _, m := range marks {
			if m.Kind != kind {
				continue
			}
			b.paste(m, dst, root, opts, res)
		}
	}

	if err := b.Unmark(); err != nil {
		return res, err
	}
	return res, nil
}

func (b *Board) paste(m model.Mark, dst, root string, opts []relocate.Option, res *relocate.Result) {
	fs := b.engine.FS()
	if !fs.Exists(m.Path) {
		logger.Log.Debug("skipping missing mark",
			zap.String("path", m.Path))
		return
	}

	target := dst
	if root != "" {
		if rel, ok := fsys.Rel(m.Path, root); ok && rel != "." {
			target = filepath.Join(dst, filepath.Dir(rel))
		}
	}

	var (
		item *relocate.Result
		err  error
	)
	if m.Kind == model.MarkCut {
		item, err = b.engine.Move(m.Path, target, opts...)
	} else {
		item, err = b.engine.Clone(m.Path, target, opts...)
	}

	if err != nil {
		res.Fail(m.Path, fs.IsDir(m.Path), err)
		return
	}
	res.Absorb(item)
}
