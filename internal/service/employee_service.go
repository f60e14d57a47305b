package service

import (
	"context"
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"

	"gorm.io/gorm"
)

type EmployeeService struct {
	Repo *repository.EmployeeRepository
}

func NewEmployeeService(repo *repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

type CreateEmployeeInput struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email"`
	JobRole         string   `json:"jobRole" binding:"required"`
	Department      string   `json:"department"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0"`
	Skills          []string `json:"skills"`
}

// UpdateEmployeeInput carries only the fields a caller may edit; nil means unchanged.
type UpdateEmployeeInput struct {
	Name            *string   `json:"name"`
	Email           *string   `json:"email"`
	Department      *string   `json:"department"`
	ExperienceYears *int      `json:"experienceYears"`
	Skills          *[]string `json:"skills"`
}

type EmployeeView struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	JobRole         string   `json:"jobRole"`
	Department      string   `json:"department"`
	ExperienceYears int      `json:"experienceYears"`
	Skills          []string `json:"skills"`
}

func NewEmployeeView(e *model.Employee) EmployeeView {
	return EmployeeView{
		ID:              e.ID,
		Name:            e.Name,
		Email:           e.Email,
		JobRole:         e.JobRole,
		Department:      e.Department,
		ExperienceYears: e.ExperienceYears,
		Skills:          e.SkillList(),
	}
}

func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*model.Employee, error) {
	e := &model.Employee{
		Name:            in.Name,
		Email:           in.Email,
		JobRole:         in.JobRole,
		Department:      in.Department,
		ExperienceYears: in.ExperienceYears,
	}
	e.SetSkills(in.Skills)
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*model.Employee, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]EmployeeView, error) {
	employees, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]EmployeeView, 0, len(employees))
	for i := range employees {
		views = append(views, NewEmployeeView(&employees[i]))
	}
	return views, nil
}

func (s *EmployeeService) ListPublic(ctx context.Context) ([]repository.PublicEmployee, error) {
	return s.Repo.ListPublic(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, id uint, in UpdateEmployeeInput) (*model.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.Department != nil {
		e.Department = *in.Department
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 {
			return nil, util.ErrInvalidInput
		}
		e.ExperienceYears = *in.ExperienceYears
	}
	if in.Skills != nil {
		e.SetSkills(*in.Skills)
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
