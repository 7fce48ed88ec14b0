// Package scan lists directory contents, either as a full walk with an
// optional filter or through doublestar glob patterns.
package scan

import (
	"errors"
	"ferry/internal/fsys"
	"ferry/internal/pipeline"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

var (
	ErrNotDirectory  = errors.New("not a directory")
	ErrNothingToGlob = errors.New("cannot exclude both directories and files")
)

const DefaultPattern = "**/*"

// Filter decides whether an entry is included. A directory that is not
// included is not descended into. It may be called from several goroutines.
type Filter func(path string, isDir bool) bool

// Ignore builds a Filter that drops entries whose name matches any of the
// patterns.
func Ignore(ignoreList []string) Filter {
	return func(path string, _ bool) bool {
		return !pipeline.Ignored(filepath.Base(path), ignoreList)
	}
}

// Scan returns the absolute paths of all directories and files under root,
// root excluded, each sorted. Without recurse only direct children are
// listed.
func Scan(root string, filter Filter, recurse bool) (dirs, files []string, err error) {
	root = fsys.Abs(root)
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return nil, nil, &fs.PathError{Op: "scan", Path: root, Err: ErrNotDirectory}
	}

	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		isDir := d.IsDir()
		if filter != nil && !filter(path, isDir) {
			if isDir {
				return fastwalk.SkipDir
			}
			return nil
		}

		mu.Lock()
		if isDir {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
		mu.Unlock()

		if isDir && !recurse {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

// Glob matches pattern (doublestar syntax, slash separated) under root and
// returns absolute paths in lexical order.
func Glob(root, pattern string, dirs, files bool) ([]string, error) {
	if !dirs && !files {
		return nil, ErrNothingToGlob
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	root = fsys.Abs(root)
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(root, filepath.FromSlash(m))
		if !dirs || !files {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.IsDir() != dirs {
				continue
			}
		}
		out = append(out, path)
	}

	sort.Strings(out)
	return out, nil
}
