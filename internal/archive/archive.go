// Package archive packs directories into archives and unpacks archives into
// directories. Both directions go through a uniquely named temporary
// directory and use the relocation engine for the final placement.
package archive

import (
	"ferry/internal/fsys"
	"ferry/internal/logger"
	"ferry/internal/relocate"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

type Archiver struct {
	engine *relocate.Engine
	namer  fsys.Namer
}

func New(engine *relocate.Engine, namer fsys.Namer) *Archiver {
	if namer == nil {
		namer = fsys.UUIDNamer{}
	}
	return &Archiver{engine: engine, namer: namer}
}

// Archive packs the contents of the directory src into an archive named
// after src. With into, dst is the directory that receives the archive;
// otherwise dst is the archive path itself. An existing archive at the
// destination is replaced. With temp, src is deleted afterwards. It returns
// the path of the archive.
func (a *Archiver) Archive(src, dst string, format Format, into, temp bool) (string, error) {
	f := a.engine.FS()
	src = fsys.Abs(src)
	if !f.IsDir(src) {
		return "", &fs.PathError{Op: "archive", Path: src, Err: relocate.ErrNotDirectory}
	}

	tmpDir := filepath.Join(fsys.Parent(src), a.namer.NewName())
	if err := f.Mkdir(tmpDir); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer a.cleanup(tmpDir)

	tmpFile := filepath.Join(tmpDir, filepath.Base(src)+format.Ext())
	if err := a.write(src, tmpFile, format); err != nil {
		return "", err
	}

	opts := []relocate.Option{relocate.WithForce(true)}
	if into {
		opts = append(opts, relocate.Into())
	}

	res, err := a.engine.Move(tmpFile, dst, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to place archive: %w", err)
	}

	if temp {
		if err := f.RemoveAll(src); err != nil {
			return res.Path, fmt.Errorf("failed to remove %s: %w", src, err)
		}
	}

	logger.Log.Info("archive created",
		zap.String("src", src),
		zap.String("archive", res.Path))

	return res.Path, nil
}

func (a *Archiver) write(src, path string, format Format) error {
	base := a.engine.FS().Afero()
	out, err := base.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	if err := pack(base, src, out, format); err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	return nil
}

// Extract unpacks the archive src and moves its contents onto dst, merging
// with whatever dst already holds. The format is detected from the name.
// With temp, the archive is deleted after a run without hard errors.
// Entries that could not be written are reported as failures.
func (a *Archiver) Extract(src, dst string, temp bool, opts ...relocate.Option) (*relocate.Result, error) {
	f := a.engine.FS()
	src = fsys.Abs(src)
	dst = fsys.Abs(dst)
	if !f.IsFile(src) {
		return nil, &fs.PathError{Op: "extract", Path: src, Err: relocate.ErrSrcNotFound}
	}

	format, err := Detect(src)
	if err != nil {
		return nil, err
	}

	tmpDir := filepath.Join(fsys.Parent(dst), a.namer.NewName())
	if _, err := f.MakeDir(tmpDir, false); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer a.cleanup(tmpDir)

	u := &unpacker{base: f.Afero(), dir: tmpDir, res: relocate.NewResult(dst)}
	if err := u.unpack(src, format); err != nil {
		return nil, err
	}

	res, err := a.engine.Move(tmpDir, dst, opts...)
	if err != nil {
		return nil, err
	}
	res.Failures = append(u.res.Failures, res.Failures...)

	if temp {
		if err := f.Remove(src); err != nil {
			res.Fail(src, false, err)
		}
	}

	return res, nil
}

func (a *Archiver) cleanup(dir string) {
	if err := a.engine.FS().RemoveAll(dir); err != nil {
		logger.Log.Warn("failed to remove temp dir",
			zap.String("path", dir),
			zap.Error(err))
	}
}
