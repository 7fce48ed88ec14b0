package model

import "gorm.io/gorm"

type MarkKind string

const (
	MarkCut  MarkKind = "CUT"
	MarkCopy MarkKind = "COPY"
)

// Mark is a path queued for the next paste. Paste order is insertion order.
type Mark struct {
	gorm.Model
	Path string   `gorm:"not null" json:"path"`
	Kind MarkKind `gorm:"not null" json:"kind"`
}
