package relocate

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotDirectory = errors.New("not a directory")
	ErrDstInsideSrc = fmt.Errorf("destination is inside source: %w", fs.ErrPermission)
	ErrTypeConflict = fmt.Errorf("file and directory conflict: %w", fs.ErrExist)
	ErrSrcNotFound  = fmt.Errorf("source not found: %w", fs.ErrNotExist)
)

func pathError(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}
