package repository

import (
	"context"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate returns the (employee, content) progress row, creating it as NOT_STARTED.
func (r *ProgressRepository) GetOrCreate(ctx context.Context, employeeID, contentID uint) (*model.LearningProgress, error) {
	progress := model.LearningProgress{
		EmployeeID: employeeID,
		ContentID:  contentID,
		Status:     model.ProgressNotStarted,
	}
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND content_id = ?", employeeID, contentID).
		FirstOrCreate(&progress).Error
	if err != nil {
		if existing, findErr := r.Find(ctx, employeeID, contentID); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Find(ctx context.Context, employeeID, contentID uint) (*model.LearningProgress, error) {
	var progress model.LearningProgress
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND content_id = ?", employeeID, contentID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) UpdateStatus(ctx context.Context, progress *model.LearningProgress) error {
	return r.DB.WithContext(ctx).Model(progress).Update("status", progress.Status).Error
}

// MarkStarted moves the row to IN_PROGRESS in a single guarded update; a DONE
// row is left untouched even when a completion races with the start.
func (r *ProgressRepository) MarkStarted(ctx context.Context, employeeID, contentID uint) error {
	return r.DB.WithContext(ctx).Model(&model.LearningProgress{}).
		Where("employee_id = ? AND content_id = ? AND status <> ?", employeeID, contentID, model.ProgressDone).
		Update("status", model.ProgressInProgress).Error
}

// ListByEmployee returns every progress row of the employee with content and skill loaded.
func (r *ProgressRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]model.LearningProgress, error) {
	var rows []model.LearningProgress
	err := r.DB.WithContext(ctx).
		Preload("Content").
		Preload("Content.Skill").
		Where("employee_id = ?", employeeID).
		Order("id").
		Find(&rows).Error
	return rows, err
}

// HasStarted reports whether any content is IN_PROGRESS or DONE.
func (r *ProgressRepository) HasStarted(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LearningProgress{}).
		Where("employee_id = ? AND status IN ?", employeeID,
			[]model.ProgressStatus{model.ProgressInProgress, model.ProgressDone}).
		Count(&count).Error
	return count > 0, err
}

type StatusCount struct {
	Status string
	Count  int64
}

func (r *ProgressRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).Model(&model.LearningProgress{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}
