package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// pack writes the contents of root (root itself excluded) to w.
func pack(base afero.Fs, root string, w io.Writer, format Format) error {
	if format.isZip() {
		return packZip(base, root, w)
	}

	switch format {
	case TarGz:
		gz := gzip.NewWriter(w)
		if err := packTar(base, root, gz); err != nil {
			_ = gz.Close()
			return err
		}
		return gz.Close()

	case TarZst:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if err := packTar(base, root, zw); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()

	default:
		return packTar(base, root, w)
	}
}

// walk visits every entry under root in lexical order with its slash
// separated path relative to root.
func walk(base afero.Fs, root string, fn func(path, name string, info os.FileInfo) error) error {
	return afero.Walk(base, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(path, filepath.ToSlash(rel), info)
	})
}

func packZip(base afero.Fs, root string, w io.Writer) error {
	zw := zip.NewWriter(w)

	err := walk(base, root, func(path, name string, info os.FileInfo) error {
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name

		if info.IsDir() {
			header.Name += "/"
			_, err := zw.CreateHeader(header)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		header.Method = zip.Deflate
		out, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		return copyFrom(base, path, out)
	})
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("failed to write zip: %w", err)
	}

	return zw.Close()
}

func packTar(base afero.Fs, root string, w io.Writer) error {
	tw := tar.NewWriter(w)

	err := walk(base, root, func(path, name string, info os.FileInfo) error {
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		return copyFrom(base, path, tw)
	})
	if err != nil {
		_ = tw.Close()
		return fmt.Errorf("failed to write tar: %w", err)
	}

	return tw.Close()
}

func copyFrom(base afero.Fs, path string, w io.Writer) error {
	f, err := base.Open(path)
	if err != nil {
		return err
	}

	defer func(f afero.File) {
		_ = f.Close()
	}(f)

	_, err = io.Copy(w, f)
	return err
}
