package pipeline

import (
	"path/filepath"
	"strings"
)

// Ignored reports whether any segment of path matches one of the patterns.
func Ignored(path string, ignoreList []string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")

	for _, part := range parts {
		for _, pattern := range ignoreList {
			matched, err := filepath.Match(pattern, part)
			if err == nil && matched {
				return true
			}
		}
	}

	return false
}
