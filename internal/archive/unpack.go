package archive

import (
	"archive/tar"
	"errors"
	"ferry/internal/fsys"
	"ferry/internal/relocate"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

var ErrUnsafePath = errors.New("entry escapes the extraction directory")

// unpacker writes archive entries below dir. Entries that cannot be written
// are recorded in res; only unreadable archives are returned as errors.
type unpacker struct {
	base afero.Fs
	dir  string
	res  *relocate.Result
}

func (u *unpacker) unpack(path string, format Format) error {
	f, err := u.base.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}

	defer func(f afero.File) {
		_ = f.Close()
	}(f)

	if format.isZip() {
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat archive: %w", err)
		}
		return u.unzip(f, info.Size())
	}

	var r io.Reader = f
	switch format {
	case TarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz

	case TarZst:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return u.untar(r)
}

func (u *unpacker) unzip(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("failed to read zip: %w", err)
	}

	for _, file := range zr.File {
		info := file.FileInfo()
		target, ok := u.target(file.Name, info.IsDir())
		if !ok {
			continue
		}

		if info.IsDir() {
			u.mkdir(target)
			continue
		}

		rc, err := file.Open()
		if err != nil {
			u.res.Fail(target, false, err)
			continue
		}
		u.write(target, rc, info.Mode().Perm())
		_ = rc.Close()
	}

	return nil
}

func (u *unpacker) untar(r io.Reader) error {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar: %w", err)
		}

		isDir := header.Typeflag == tar.TypeDir
		if !isDir && header.Typeflag != tar.TypeReg {
			continue
		}

		target, ok := u.target(header.Name, isDir)
		if !ok {
			continue
		}

		if isDir {
			u.mkdir(target)
			continue
		}
		u.write(target, tr, os.FileMode(header.Mode).Perm())
	}
}

// target maps an entry name below dir, refusing names that would land
// outside of it.
func (u *unpacker) target(name string, isDir bool) (string, bool) {
	target := filepath.Join(u.dir, filepath.FromSlash(name))
	if rel, ok := fsys.Rel(target, u.dir); !ok || rel == "." {
		u.res.Fail(name, isDir, &os.PathError{Op: "extract", Path: name, Err: ErrUnsafePath})
		return "", false
	}
	return target, true
}

func (u *unpacker) mkdir(target string) {
	if err := u.base.MkdirAll(target, 0755); err != nil {
		u.res.Fail(target, true, err)
	}
}

func (u *unpacker) write(target string, r io.Reader, perm os.FileMode) {
	if perm == 0 {
		perm = 0644
	}

	if err := u.base.MkdirAll(filepath.Dir(target), 0755); err != nil {
		u.res.Fail(target, false, err)
		return
	}

	out, err := u.base.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		u.res.Fail(target, false, err)
		return
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		u.res.Fail(target, false, err)
		return
	}
	if err := out.Close(); err != nil {
		u.res.Fail(target, false, err)
	}
}
