package repository

import (
	"context"
	"errors"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

// Replace hard-deletes every path of the employee and inserts path in one transaction.
func (r *LearningPathRepository) Replace(ctx context.Context, path *model.LearningPath) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("employee_id = ?", path.EmployeeID).
			Delete(&model.LearningPath{}).Error; err != nil {
			return err
		}
		return tx.Create(path).Error
	})
}

// FindLatest returns the employee's newest path, or nil.
func (r *LearningPathRepository) FindLatest(ctx context.Context, employeeID uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Order("id DESC").
		First(&path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *LearningPathRepository) Exists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LearningPath{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *LearningPathRepository) CountByEmployee(ctx context.Context, employeeID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Unscoped().Model(&model.LearningPath{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}
