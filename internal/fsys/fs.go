// Package fsys is the filesystem collaborator used by the relocation engine:
// existence and kind checks, container creation, and single-file copy/move
// primitives. It is backed by afero so the same code runs against the OS or
// any other afero.Fs.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

type Kind int

const (
	KindMissing Kind = iota
	KindFile
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "missing"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FS answers questions about paths and performs single-entry mutations.
// Kinds are computed on every call and never cached.
type FS interface {
	Exists(path string) bool
	IsDir(path string) bool
	IsFile(path string) bool
	IsSymlink(path string) bool
	Kind(path string) Kind

	// MakeParents ensures the parent chain of path exists.
	MakeParents(path string, force bool) (bool, error)
	// MakeDir ensures path exists as a directory. With force, a single file
	// blocking the chain is removed first.
	MakeDir(path string, force bool) (bool, error)

	CopyFile(src, dst string) error
	MoveFile(src, dst string) error
	Rename(src, dst string) error
	Mkdir(path string) error
	Remove(path string) error
	RemoveAll(path string) error
	ReadDir(path string) ([]os.FileInfo, error)

	Afero() afero.Fs
}

type AferoFS struct {
	fs afero.Fs
}

func New(base afero.Fs) *AferoFS {
	return &AferoFS{fs: base}
}

func NewOS() *AferoFS {
	return New(afero.NewOsFs())
}

func (f *AferoFS) Afero() afero.Fs {
	return f.fs
}

func (f *AferoFS) Kind(path string) Kind {
	info, err := f.fs.Stat(path)
	if err != nil {
		return KindMissing
	}

	if info.IsDir() {
		return KindDir
	}

	return KindFile
}

func (f *AferoFS) Exists(path string) bool {
	return f.Kind(path) != KindMissing
}

func (f *AferoFS) IsDir(path string) bool {
	return f.Kind(path) == KindDir
}

func (f *AferoFS) IsFile(path string) bool {
	return f.Kind(path) == KindFile
}

func (f *AferoFS) IsSymlink(path string) bool {
	l, ok := f.fs.(afero.Lstater)
	if !ok {
		return false
	}

	info, lstatCalled, err := l.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}

func (f *AferoFS) MakeParents(path string, force bool) (bool, error) {
	return f.MakeDir(Parent(path), force)
}

func (f *AferoFS) MakeDir(path string, force bool) (bool, error) {
	path = Abs(path)
	if f.IsDir(path) {
		return false, nil
	}

	err := f.fs.MkdirAll(path, 0755)
	if err == nil {
		return true, nil
	}
	if !force {
		return false, err
	}

	// At most one file can block the chain: the deepest existing ancestor.
	blocker := path
	for !f.Exists(blocker) {
		parent := filepath.Dir(blocker)
		if parent == blocker {
			return false, err
		}
		blocker = parent
	}

	if f.IsDir(blocker) {
		return false, err
	}

	if rmErr := f.fs.Remove(blocker); rmErr != nil {
		return false, fmt.Errorf("failed to remove blocking file %s: %w", blocker, rmErr)
	}

	if err := f.fs.MkdirAll(path, 0755); err != nil {
		return false, err
	}

	return true, nil
}

// CopyFile copies src over dst through a temp file and a rename, so readers
// of dst never see a partial file.
func (f *AferoFS) CopyFile(src, dst string) error {
	in, err := f.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open src: %w", err)
	}

	defer func(in afero.File) {
		_ = in.Close()
	}(in)

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat src: %w", err)
	}
	if info.IsDir() {
		return &os.PathError{Op: "copy", Path: src, Err: syscall.EISDIR}
	}

	tmp := dst + ".ferry.tmp"
	out, err := f.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to open dst: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to copy: %w", err)
	}

	if err := out.Close(); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to close dst: %w", err)
	}

	if err := f.fs.Rename(tmp, dst); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to rename tmp: %w", err)
	}

	return nil
}

// MoveFile renames src to dst, falling back to copy and remove when the two
// paths live on different devices.
func (f *AferoFS) MoveFile(src, dst string) error {
	err := f.fs.Rename(src, dst)
	if err == nil || !IsCrossDevice(err) {
		return err
	}

	if err := f.CopyFile(src, dst); err != nil {
		return err
	}

	return f.fs.Remove(src)
}

func (f *AferoFS) Rename(src, dst string) error {
	return f.fs.Rename(src, dst)
}

func (f *AferoFS) Mkdir(path string) error {
	return f.fs.Mkdir(path, 0755)
}

func (f *AferoFS) Remove(path string) error {
	return f.fs.Remove(path)
}

func (f *AferoFS) RemoveAll(path string) error {
	return f.fs.RemoveAll(path)
}

func (f *AferoFS) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(f.fs, path)
}

func IsCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
