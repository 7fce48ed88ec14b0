package relocate

import (
	"errors"
	"ferry/internal/logger"
	"fmt"

	"go.uber.org/zap"
)

// Failure is a per-entry error that did not stop the operation.
type Failure struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Err   error  `json:"-"`
}

func (f Failure) Error() string {
	kind := "file"
	if f.IsDir {
		kind = "dir"
	}
	return fmt.Sprintf("%s %s: %v", kind, f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result is returned by every root call. Path is where the relocated entry
// now lives; Failures keeps encounter order.
type Result struct {
	Path     string    `json:"path"`
	Failures []Failure `json:"failures"`
}

func NewResult(path string) *Result {
	return &Result{Path: path, Failures: []Failure{}}
}

func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

func (r *Result) Err() error {
	if r.OK() {
		return nil
	}

	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

func (r *Result) Fail(path string, isDir bool, err error) {
	logger.Log.Warn("entry failed",
		zap.String("path", path),
		zap.Bool("dir", isDir),
		zap.Error(err))

	r.Failures = append(r.Failures, Failure{Path: path, IsDir: isDir, Err: err})
}

// Absorb appends the failures of other, keeping their order.
func (r *Result) Absorb(other *Result) {
	if other == nil {
		return
	}
	r.Failures = append(r.Failures, other.Failures...)
}
