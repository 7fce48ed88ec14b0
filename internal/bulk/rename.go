// Package bulk renames files and rewrites their contents in batches. Every
// path is attempted; failures are collected instead of stopping the batch.
package bulk

import (
	"errors"
	"ferry/internal/fsys"
	"ferry/internal/relocate"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrSeparator = errors.New("name must not contain a path separator")

// Rename gives every path the new base name. With a pattern, only paths
// whose base name fully matches are renamed, and name is expanded as a
// template ($1, ${name}). The returned slice holds the resulting path for
// each input, the original path when nothing changed.
func Rename(f fsys.FS, paths []string, name string, pattern *regexp.Regexp) ([]string, *relocate.Result, error) {
	if strings.ContainsAny(name, `/\`) {
		return nil, nil, ErrSeparator
	}

	var full *regexp.Regexp
	if pattern != nil {
		var err error
		full, err = regexp.Compile(`^(?:` + pattern.String() + `)$`)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to anchor pattern: %w", err)
		}
	}

	res := relocate.NewResult("")
	out := make([]string, 0, len(paths))

	for _, path := range paths {
		path = filepath.Clean(path)
		newName, ok := expand(full, name, filepath.Base(path))
		if !ok {
			out = append(out, path)
			continue
		}

		target := filepath.Join(filepath.Dir(path), newName)
		if err := renameOne(f, path, target); err != nil {
			res.Fail(path, f.IsDir(path), err)
			out = append(out, path)
			continue
		}
		out = append(out, target)
	}

	return out, res, nil
}

func expand(full *regexp.Regexp, name, base string) (string, bool) {
	if full == nil {
		return name, true
	}

	match := full.FindStringSubmatchIndex(base)
	if match == nil {
		return "", false
	}
	return string(full.ExpandString(nil, name, base, match)), true
}

func renameOne(f fsys.FS, src, dst string) error {
	if src == dst {
		return nil
	}
	if !f.Exists(src) {
		return &fs.PathError{Op: "rename", Path: src, Err: fs.ErrNotExist}
	}
	if f.Exists(dst) {
		return &fs.PathError{Op: "rename", Path: dst, Err: fs.ErrExist}
	}
	return f.Rename(src, dst)
}
