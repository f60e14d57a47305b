package service

import (
	"context"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"

	"golang.org/x/sync/errgroup"
)

const topSkillGapLimit = 5

type AnalyticsService struct {
	Employees   *repository.EmployeeRepository
	Assessments *repository.AssessmentRepository
	Progress    *repository.ProgressRepository
}

func NewAnalyticsService(employees *repository.EmployeeRepository, assessments *repository.AssessmentRepository, progress *repository.ProgressRepository) *AnalyticsService {
	return &AnalyticsService{Employees: employees, Assessments: assessments, Progress: progress}
}

// Summary runs the four aggregate queries concurrently.
func (s *AnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	summary := &model.AnalyticsSummary{
		LearningStatus: map[string]int64{
			string(model.ProgressNotStarted): 0,
			string(model.ProgressInProgress): 0,
			string(model.ProgressDone):       0,
		},
	}

	var statusRows []repository.StatusCount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Employees.Count(gctx)
		summary.TotalEmployees = n
		return err
	})
	g.Go(func() error {
		n, err := s.Assessments.CountCompleted(gctx)
		summary.AssessmentsCompleted = n
		return err
	})
	g.Go(func() error {
		rows, err := s.Progress.CountByStatus(gctx)
		statusRows = rows
		return err
	})
	g.Go(func() error {
		gaps, err := s.Assessments.TopSkillGaps(gctx, util.PassingScore, topSkillGapLimit)
		summary.TopSkillGaps = gaps
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range statusRows {
		summary.LearningStatus[row.Status] = row.Count
	}
	if summary.TopSkillGaps == nil {
		summary.TopSkillGaps = []model.SkillGap{}
	}
	return summary, nil
}
