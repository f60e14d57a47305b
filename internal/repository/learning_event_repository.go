package repository

import (
	"context"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

type LearningEventRepository struct {
	DB *gorm.DB
}

func NewLearningEventRepository(db *gorm.DB) *LearningEventRepository {
	return &LearningEventRepository{DB: db}
}

func (r *LearningEventRepository) Create(ctx context.Context, event *model.LearningEvent) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

// ListByEmployee returns the newest events first.
func (r *LearningEventRepository) ListByEmployee(ctx context.Context, employeeID uint, limit int) ([]model.LearningEvent, error) {
	var events []model.LearningEvent
	q := r.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&events).Error
	return events, err
}
