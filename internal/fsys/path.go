package fsys

import (
	"path/filepath"
	"strings"
)

// Abs normalizes path to a clean absolute form. If the working directory
// cannot be determined the cleaned input is returned.
func Abs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func Parent(path string) string {
	return filepath.Dir(Abs(path))
}

// Rel returns the path of child relative to parent and true when child is
// parent itself or lies beneath it.
func Rel(child, parent string) (string, bool) {
	rel, err := filepath.Rel(Abs(parent), Abs(child))
	if err != nil {
		return "", false
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return rel, true
}
