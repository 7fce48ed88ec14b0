package fsys

import "github.com/google/uuid"

// Namer produces collision-resistant names for staging directories.
type Namer interface {
	NewName() string
}

type UUIDNamer struct{}

func (UUIDNamer) NewName() string {
	return uuid.NewString()
}
