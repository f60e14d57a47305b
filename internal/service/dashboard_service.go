package service

import (
	"context"

	"skillpath_backend/internal/model"
)

type DashboardView struct {
	Employee       EmployeeView     `json:"employee"`
	ProfileSummary ProfileSummary   `json:"profileSummary"`
	LearningPath   []model.PathItem `json:"learningPath"`
	WorkflowStatus string           `json:"workflowStatus"`
}

// DashboardService assembles the learner landing page.
type DashboardService struct {
	Employees *EmployeeService
	Profiles  *ProfileService
	Paths     *LearningPathService
	Progress  *ProgressService
}

func NewDashboardService(employees *EmployeeService, profiles *ProfileService, paths *LearningPathService, progress *ProgressService) *DashboardService {
	return &DashboardService{Employees: employees, Profiles: profiles, Paths: paths, Progress: progress}
}

// Get recomputes the profile summary on every call. LearningPath is nil until a path was generated.
func (s *DashboardService) Get(ctx context.Context, employeeID uint) (*DashboardView, error) {
	employee, err := s.Employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Employee:       NewEmployeeView(employee),
		ProfileSummary: s.Profiles.Build(ctx, employee),
	}

	path, err := s.Paths.Latest(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if path != nil {
		view.LearningPath = path.ItemList()
	}

	status, err := s.Progress.Workflow(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	view.WorkflowStatus = status.Bar().CurrentStep
	return view, nil
}
