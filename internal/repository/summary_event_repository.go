package repository

import (
	"fmt"

	"gorm.io/gorm"

	"yt-summarizer/internal/model"
)

type SummaryEventRepository struct {
	db *gorm.DB
}

func NewSummaryEventRepository(db *gorm.DB) *SummaryEventRepository {
	return &SummaryEventRepository{db: db}
}

func (r *SummaryEventRepository) Create(event *model.SummaryEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create summary event failed: %w", err)
	}
	return nil
}

func (r *SummaryEventRepository) ListByUserID(userID uint, limit int) ([]model.SummaryEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var events []model.SummaryEvent
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list summary events failed: %w", err)
	}
	return events, nil
}
