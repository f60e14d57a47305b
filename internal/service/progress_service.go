package service

import (
	"context"
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"

	"gorm.io/gorm"
)

const (
	StepProfileLoaded            = "PROFILE_LOADED"
	StepAssessmentCompleted      = "ASSESSMENT_COMPLETED"
	StepRecommendationsGenerated = "RECOMMENDATIONS_GENERATED"
	StepLearningInProgress       = "LEARNING_IN_PROGRESS"
)

type Step struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// WorkflowStatus is derived from existing records; it has no state of its own.
type WorkflowStatus struct {
	ProfileLoaded            bool `json:"profileLoaded"`
	AssessmentPending        bool `json:"assessmentPending"`
	AssessmentCompleted      bool `json:"assessmentCompleted"`
	RecommendationsGenerated bool `json:"recommendationsGenerated"`
	LearningInProgress       bool `json:"learningInProgress"`
}

type ProgressBar struct {
	Steps           []Step `json:"steps"`
	ProgressPercent int    `json:"progressPercent"`
	CurrentStep     string `json:"currentStep"`
}

// Bar projects the flags onto the four ordered steps.
func (w WorkflowStatus) Bar() ProgressBar {
	steps := []Step{
		{Key: StepProfileLoaded, Label: "Profile Loaded", Completed: w.ProfileLoaded},
		{Key: StepAssessmentCompleted, Label: "Assessment Completed", Completed: w.AssessmentCompleted},
		{Key: StepRecommendationsGenerated, Label: "Recommendations Generated", Completed: w.RecommendationsGenerated},
		{Key: StepLearningInProgress, Label: "Learning In Progress", Completed: w.LearningInProgress},
	}

	met := 0
	current := ""
	for _, s := range steps {
		if s.Completed {
			met++
		} else if current == "" {
			current = s.Key
		}
	}
	if current == "" {
		current = steps[len(steps)-1].Key
	}
	return ProgressBar{
		Steps:           steps,
		ProgressPercent: met * 100 / len(steps),
		CurrentStep:     current,
	}
}

type ProgressService struct {
	Employees   *repository.EmployeeRepository
	Assessments *repository.AssessmentRepository
	Paths       *repository.LearningPathRepository
	Progress    *repository.ProgressRepository
	Catalog     *repository.CatalogRepository
	Events      *EventService
}

func NewProgressService(
	employees *repository.EmployeeRepository,
	assessments *repository.AssessmentRepository,
	paths *repository.LearningPathRepository,
	progress *repository.ProgressRepository,
	catalog *repository.CatalogRepository,
	events *EventService,
) *ProgressService {
	return &ProgressService{
		Employees:   employees,
		Assessments: assessments,
		Paths:       paths,
		Progress:    progress,
		Catalog:     catalog,
		Events:      events,
	}
}

func (s *ProgressService) Workflow(ctx context.Context, employeeID uint) (*WorkflowStatus, error) {
	exists, err := s.Employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrEmployeeNotFound
	}

	status := &WorkflowStatus{ProfileLoaded: true}

	anySession, err := s.Assessments.HasAnySession(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	status.AssessmentPending = !anySession

	if status.AssessmentCompleted, err = s.Assessments.HasCompleted(ctx, employeeID); err != nil {
		return nil, err
	}
	if status.RecommendationsGenerated, err = s.Paths.Exists(ctx, employeeID); err != nil {
		return nil, err
	}
	if status.LearningInProgress, err = s.Progress.HasStarted(ctx, employeeID); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *ProgressService) ProgressBar(ctx context.Context, employeeID uint) (*ProgressBar, error) {
	status, err := s.Workflow(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	bar := status.Bar()
	return &bar, nil
}

func (s *ProgressService) resolve(ctx context.Context, employeeID, contentID uint) error {
	exists, err := s.Employees.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrEmployeeNotFound
	}
	if _, err := s.Catalog.FindContentByID(ctx, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrContentNotFound
		}
		return err
	}
	return nil
}

// StartContent moves content to IN_PROGRESS; DONE is never reverted.
func (s *ProgressService) StartContent(ctx context.Context, employeeID, contentID uint) (*model.LearningProgress, error) {
	if err := s.resolve(ctx, employeeID, contentID); err != nil {
		return nil, err
	}
	if _, err := s.Progress.GetOrCreate(ctx, employeeID, contentID); err != nil {
		return nil, err
	}
	if err := s.Progress.MarkStarted(ctx, employeeID, contentID); err != nil {
		return nil, err
	}
	progress, err := s.Progress.Find(ctx, employeeID, contentID)
	if err != nil {
		return nil, err
	}
	s.Events.Record(ctx, employeeID, model.EventContentStarted, map[string]interface{}{"content_id": contentID})
	return progress, nil
}

// CompleteContent requires an existing progress row.
func (s *ProgressService) CompleteContent(ctx context.Context, employeeID, contentID uint) (*model.LearningProgress, error) {
	if err := s.resolve(ctx, employeeID, contentID); err != nil {
		return nil, err
	}
	progress, err := s.Progress.Find(ctx, employeeID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	progress.Complete()
	if err := s.Progress.UpdateStatus(ctx, progress); err != nil {
		return nil, err
	}
	s.Events.Record(ctx, employeeID, model.EventContentCompleted, map[string]interface{}{"content_id": contentID})
	return progress, nil
}
