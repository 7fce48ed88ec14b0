package repository

import (
	"ferry/internal/db"
	"ferry/internal/model"
	"time"
)

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Save records one finished operation. failed is the number of soft failures;
// err is the hard error, if any.
func (r *HistoryRepository) Save(op model.Operation, src, dst string, failed int, err error) error {
	status := model.StatusSuccess
	errMsg := ""
	switch {
	case err != nil:
		status = model.StatusFailed
		errMsg = err.Error()
	case failed > 0:
		status = model.StatusPartial
	}

	history := model.History{
		Operation:  op,
		Status:     status,
		SrcPath:    src,
		DstPath:    dst,
		Failed:     failed,
		ErrMsg:     errMsg,
		FinishedAt: time.Now(),
	}

	return db.DB.Create(&history).Error
}

type Stats struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
}

func (r *HistoryRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.History{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.History{}).
		Where("status = ?", model.StatusSuccess).
		Count(&stats.Success).Error; err != nil {
		return stats, err
	}

	stats.Failed = stats.Total - stats.Success
	return stats, nil
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.History, error) {
	var histories []model.History
	result := db.DB.
		Order("finished_at desc, id desc").
		Limit(limit).
		Find(&histories)

	return histories, result.Error
}

func (r *HistoryRepository) GetFailed() ([]model.History, error) {
	var histories []model.History
	result := db.DB.
		Where("status <> ?", model.StatusSuccess).
		Order("finished_at desc, id desc").
		Find(&histories)

	return histories, result.Error
}
