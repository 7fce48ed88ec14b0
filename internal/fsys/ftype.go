package fsys

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

type Type struct {
	Kind    Kind   `json:"kind"`
	Symlink bool   `json:"symlink"`
	MIME    string `json:"mime,omitempty"`
}

// FType reports what lives at path. MIME is only sniffed for files.
func (f *AferoFS) FType(path string) (Type, error) {
	t := Type{
		Kind:    f.Kind(path),
		Symlink: f.IsSymlink(path),
	}
	if t.Kind != KindFile {
		return t, nil
	}

	file, err := f.fs.Open(path)
	if err != nil {
		return t, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return t, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	t.MIME = mtype.String()
	return t, nil
}
