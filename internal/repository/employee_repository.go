package repository

import (
	"context"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	DB *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

// PublicEmployee is the unauthenticated listing shape.
type PublicEmployee struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	JobRole string `json:"jobRole"`
}

func (r *EmployeeRepository) Create(ctx context.Context, e *model.Employee) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var e model.Employee
	err := r.DB.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *EmployeeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.DB.WithContext(ctx).Order("id").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) ListPublic(ctx context.Context) ([]PublicEmployee, error) {
	var rows []PublicEmployee
	err := r.DB.WithContext(ctx).Model(&model.Employee{}).
		Select("id, name, job_role").
		Order("id").
		Scan(&rows).Error
	return rows, err
}

func (r *EmployeeRepository) Update(ctx context.Context, e *model.Employee) error {
	return r.DB.WithContext(ctx).Save(e).Error
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Employee{}).Count(&count).Error
	return count, err
}
