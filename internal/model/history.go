package model

import (
	"time"

	"gorm.io/gorm"
)

type Operation string

const (
	OpMerge   Operation = "MERGE"
	OpClone   Operation = "CLONE"
	OpMove    Operation = "MOVE"
	OpDelete  Operation = "DELETE"
	OpPaste   Operation = "PASTE"
	OpRename  Operation = "RENAME"
	OpReplace Operation = "REPLACE"
	OpArchive Operation = "ARCHIVE"
	OpExtract Operation = "EXTRACT"
	OpInbox   Operation = "INBOX"
)

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPartial Status = "PARTIAL"
	StatusFailed  Status = "FAILED"
)

type History struct {
	gorm.Model
	Operation  Operation `gorm:"not null" json:"operation"`
	Status     Status    `gorm:"not null" json:"status"`
	SrcPath    string    `json:"src"`
	DstPath    string    `json:"dst"`
	Failed     int       `json:"failed"`
	ErrMsg     string    `json:"error,omitempty"`
	FinishedAt time.Time `gorm:"not null" json:"finished_at"`
}
