package repository

import (
	"ferry/internal/db"
	"ferry/internal/model"
)

// MarkRepository persists clipboard marks so cut/copy and paste can run in
// separate invocations.
type MarkRepository struct{}

func NewMarkRepository() *MarkRepository {
	return &MarkRepository{}
}

func (r *MarkRepository) Add(kind model.MarkKind, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	marks := make([]model.Mark, 0, len(paths))
	for _, p := range paths {
		marks = append(marks, model.Mark{Path: p, Kind: kind})
	}

	return db.DB.Create(&marks).Error
}

func (r *MarkRepository) List() ([]model.Mark, error) {
	var marks []model.Mark
	return marks, db.DB.Order("id asc").Find(&marks).Error
}

func (r *MarkRepository) Clear() error {
	return db.DB.Unscoped().Where("1 = 1").Delete(&model.Mark{}).Error
}
