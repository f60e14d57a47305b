package service

import (
	"context"
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LearningPathService struct {
	Employees   *repository.EmployeeRepository
	Assessments *repository.AssessmentRepository
	Catalog     *repository.CatalogRepository
	Progress    *repository.ProgressRepository
	Paths       *repository.LearningPathRepository
	Lock        GenerationLock
	Events      *EventService
}

func NewLearningPathService(
	employees *repository.EmployeeRepository,
	assessments *repository.AssessmentRepository,
	catalog *repository.CatalogRepository,
	progress *repository.ProgressRepository,
	paths *repository.LearningPathRepository,
	lock GenerationLock,
	events *EventService,
) *LearningPathService {
	return &LearningPathService{
		Employees:   employees,
		Assessments: assessments,
		Catalog:     catalog,
		Progress:    progress,
		Paths:       paths,
		Lock:        lock,
		Events:      events,
	}
}

type GeneratedPath struct {
	LearningPathID uint             `json:"learningPathId"`
	MatchedSkills  []string         `json:"matchedSkills"`
	MissingSkills  []string         `json:"missingSkills"`
	LearningItems  []model.PathItem `json:"learningItems"`
}

type LearningItemView struct {
	ID             uint                 `json:"id"`
	Title          string               `json:"title"`
	Skill          string               `json:"skill"`
	Thumbnail      string               `json:"thumbnail"`
	URL            string               `json:"url"`
	EstimatedHours int                  `json:"estimatedHours"`
	Status         model.ProgressStatus `json:"status"`
}

func (s *LearningPathService) ensureEmployee(ctx context.Context, employeeID uint) error {
	exists, err := s.Employees.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrEmployeeNotFound
	}
	return nil
}

// Generate rebuilds the employee's learning path from the latest completed
// assessment: skills scoring below util.PassingScore are missing and pull in
// every catalog item for that skill.
func (s *LearningPathService) Generate(ctx context.Context, employeeID uint) (*GeneratedPath, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	release, err := s.Lock.Acquire(ctx, employeeLockKey(employeeID))
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.Assessments.LatestCompleted(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, util.ErrNoCompletedAssessment
	}

	results, err := s.Assessments.ListResults(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	matched := []string{}
	missing := []string{}
	for _, r := range results {
		if r.Skill == nil {
			continue
		}
		if r.Score < util.PassingScore {
			missing = append(missing, r.Skill.Name)
		} else {
			matched = append(matched, r.Skill.Name)
		}
	}

	items := []model.PathItem{}
	for _, skill := range missing {
		contents, err := s.Catalog.FindContentsBySkillName(ctx, skill)
		if err != nil {
			return nil, err
		}
		for _, c := range contents {
			progress, err := s.Progress.GetOrCreate(ctx, employeeID, c.ID)
			if err != nil {
				return nil, err
			}
			items = append(items, model.PathItem{
				ContentID: c.ID,
				Title:     c.Title,
				Skill:     skill,
				URL:       c.ContentURL,
				Thumbnail: c.ThumbnailURL,
				Duration:  c.DurationMinutes,
				Status:    progress.Status,
			})
		}
	}

	path := &model.LearningPath{
		EmployeeID:    employeeID,
		Status:        model.ProgressNotStarted,
		MatchedSkills: model.StringList(matched),
		MissingSkills: model.StringList(missing),
	}
	path.SetItems(items)
	if err := s.Paths.Replace(ctx, path); err != nil {
		return nil, err
	}

	monitoring.LearningPathsGenerated.Inc()
	logger.Log.Info("Learning path generated",
		zap.Uint("employee_id", employeeID),
		zap.Strings("missing", missing),
		zap.Int("items", len(items)))
	s.Events.Record(ctx, employeeID, model.EventLearningPathGenerated, map[string]interface{}{
		"learning_path_id": path.ID,
		"missing_skills":   missing,
	})

	return &GeneratedPath{
		LearningPathID: path.ID,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		LearningItems:  items,
	}, nil
}

// Get lists every progress row of the employee joined with its content.
func (s *LearningPathService) Get(ctx context.Context, employeeID uint) ([]LearningItemView, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	rows, err := s.Progress.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	items := make([]LearningItemView, 0, len(rows))
	for _, p := range rows {
		if p.Content == nil {
			continue
		}
		skill := ""
		if p.Content.Skill != nil {
			skill = p.Content.Skill.Name
		}
		items = append(items, LearningItemView{
			ID:             p.Content.ID,
			Title:          p.Content.Title,
			Skill:          skill,
			Thumbnail:      p.Content.ThumbnailURL,
			URL:            p.Content.ContentURL,
			EstimatedHours: p.Content.DurationMinutes,
			Status:         p.Status,
		})
	}
	return items, nil
}

// Latest returns the stored snapshot, or nil when none was generated yet.
func (s *LearningPathService) Latest(ctx context.Context, employeeID uint) (*model.LearningPath, error) {
	path, err := s.Paths.FindLatest(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return path, nil
}
