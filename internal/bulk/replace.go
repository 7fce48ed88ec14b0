package bulk

import (
	"bytes"
	"errors"
	"ferry/internal/fsys"
	"ferry/internal/relocate"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"github.com/spf13/afero"
)

var ErrNotText = errors.New("content is not UTF-8 text")

type Mode int

const (
	ModeString Mode = iota
	ModeBytes
	ModeRegexp
)

// Replacer describes one content substitution.
type Replacer struct {
	mode    Mode
	old     []byte
	new     []byte
	pattern *regexp.Regexp
}

func String(old, new string) Replacer {
	return Replacer{mode: ModeString, old: []byte(old), new: []byte(new)}
}

func Bytes(old, new []byte) Replacer {
	return Replacer{mode: ModeBytes, old: old, new: new}
}

// Regexp replaces every match of pattern with repl, which may reference
// capture groups as $1 or ${name}.
func Regexp(pattern *regexp.Regexp, repl string) Replacer {
	return Replacer{mode: ModeRegexp, pattern: pattern, new: []byte(repl)}
}

func (r Replacer) Mode() Mode {
	return r.mode
}

func (r Replacer) apply(data []byte) []byte {
	switch r.mode {
	case ModeRegexp:
		return r.pattern.ReplaceAll(data, r.new)
	default:
		return bytes.ReplaceAll(data, r.old, r.new)
	}
}

// Replace rewrites every file in paths. Directories are skipped. Text modes
// refuse files that are not valid UTF-8.
func Replace(f fsys.FS, paths []string, r Replacer) *relocate.Result {
	res := relocate.NewResult("")

	for _, path := range paths {
		if f.IsDir(path) {
			continue
		}
		if err := replaceOne(f.Afero(), path, r); err != nil {
			res.Fail(path, false, err)
		}
	}

	return res
}

func replaceOne(base afero.Fs, path string, r Replacer) error {
	info, err := base.Stat(path)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(base, path)
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}

	if r.mode != ModeBytes && !utf8.Valid(data) {
		return fmt.Errorf("%w (detected %s)", ErrNotText, detectCharset(data))
	}

	out := r.apply(data)
	if bytes.Equal(out, data) {
		return nil
	}

	if err := afero.WriteFile(base, path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "unknown"
	}
	return result.Charset
}
