package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/llm"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	questionsPerSkill  = 5
	questionDifficulty = "Medium"
)

type AssessmentService struct {
	DB          *gorm.DB
	Employees   *repository.EmployeeRepository
	Assessments *repository.AssessmentRepository
	Catalog     *repository.CatalogRepository
	Generator   llm.Generator
	Lock        GenerationLock
	Events      *EventService
}

func NewAssessmentService(
	db *gorm.DB,
	employees *repository.EmployeeRepository,
	assessments *repository.AssessmentRepository,
	catalog *repository.CatalogRepository,
	generator llm.Generator,
	lock GenerationLock,
	events *EventService,
) *AssessmentService {
	return &AssessmentService{
		DB:          db,
		Employees:   employees,
		Assessments: assessments,
		Catalog:     catalog,
		Generator:   generator,
		Lock:        lock,
		Events:      events,
	}
}

type StartResult struct {
	SessionID uint `json:"sessionId"`
	Created   bool `json:"-"`
}

type QuestionView struct {
	ID       uint              `json:"id"`
	Skill    string            `json:"skill"`
	Question string            `json:"question"`
	Options  datatypes.JSONMap `json:"options"`
}

type SubmitResult struct {
	AssessmentID uint           `json:"assessmentId"`
	Results      map[string]int `json:"results"`
}

type ResultsView struct {
	SessionID   uint           `json:"sessionId"`
	CompletedAt *time.Time     `json:"completedAt"`
	Results     map[string]int `json:"results"`
}

func (s *AssessmentService) requireEmployee(ctx context.Context, employeeID uint) (*model.Employee, error) {
	e, err := s.Employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

// Start returns the employee's open session, or opens a new one.
func (s *AssessmentService) Start(ctx context.Context, employeeID uint) (*StartResult, error) {
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	release, err := s.Lock.Acquire(ctx, employeeLockKey(employeeID))
	if err != nil {
		return nil, err
	}
	defer release()

	active, err := s.Assessments.FindStarted(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return &StartResult{SessionID: active.ID}, nil
	}

	session := &model.AssessmentSession{
		EmployeeID: employeeID,
		Status:     model.SessionStarted,
		StartedAt:  time.Now(),
	}
	if err := s.Assessments.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	s.Events.Record(ctx, employeeID, model.EventAssessmentStarted, map[string]interface{}{"session_id": session.ID})
	return &StartResult{SessionID: session.ID, Created: true}, nil
}

func newQuestionViews(questions []model.AssessmentQuestion) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		skill := ""
		if q.Skill != nil {
			skill = q.Skill.Name
		}
		views = append(views, QuestionView{ID: q.ID, Skill: skill, Question: q.QuestionText, Options: q.Options})
	}
	return views
}

func buildQuestionPrompt(skill string) string {
	return fmt.Sprintf(`Generate exactly %d multiple choice questions for skill %s.
Return ONLY a valid JSON array with no additional text.
Each question must have this exact structure:
{
  "question": "question text here",
  "options": {
    "A": "option A",
    "B": "option B",
    "C": "option C",
    "D": "option D"
  },
  "correct_option": "A"
}
Return as a JSON array of %d questions.`, questionsPerSkill, skill, questionsPerSkill)
}

// GenerateQuestions creates questions for every declared skill of the employee.
// When the active session already has questions they are returned as-is and
// generated is false. Questions persisted for earlier skills survive a failure
// on a later skill.
func (s *AssessmentService) GenerateQuestions(ctx context.Context, employeeID uint) (views []QuestionView, generated bool, err error) {
	employee, err := s.requireEmployee(ctx, employeeID)
	if err != nil {
		return nil, false, err
	}

	release, err := s.Lock.Acquire(ctx, employeeLockKey(employeeID))
	if err != nil {
		return nil, false, err
	}
	defer release()

	session, err := s.Assessments.FindStarted(ctx, employeeID)
	if err != nil {
		return nil, false, err
	}
	if session == nil {
		return nil, false, util.ErrNoActiveSession
	}

	existing, err := s.Assessments.ListQuestions(ctx, session.ID)
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return newQuestionViews(existing), false, nil
	}

	for _, skillName := range employee.SkillList() {
		skill, err := s.Catalog.ResolveSkill(ctx, skillName)
		if err != nil {
			return nil, false, err
		}

		text, err := s.Generator.Generate(ctx, buildQuestionPrompt(skillName))
		if err != nil {
			logger.Log.Error("Question generation failed",
				zap.Uint("employee_id", employeeID),
				zap.String("skill", skillName),
				zap.Error(err))
			return nil, false, err
		}

		parsed, err := llm.ParseQuestions(text)
		if err != nil {
			logger.Log.Error("Question response not parseable",
				zap.Uint("employee_id", employeeID),
				zap.String("skill", skillName),
				zap.Error(err))
			return nil, false, err
		}

		rows := make([]model.AssessmentQuestion, 0, len(parsed))
		for _, q := range parsed {
			options := make(datatypes.JSONMap, len(q.Options))
			for k, v := range q.Options {
				options[k] = v
			}
			rows = append(rows, model.AssessmentQuestion{
				SessionID:     session.ID,
				SkillID:       skill.ID,
				QuestionText:  q.Text,
				Options:       options,
				CorrectOption: q.CorrectOption,
				Difficulty:    questionDifficulty,
			})
		}
		if err := s.Assessments.CreateQuestions(ctx, rows); err != nil {
			return nil, false, err
		}
		if dropped := questionsPerSkill - len(rows); dropped > 0 {
			logger.Log.Debug("Fewer questions than requested",
				zap.String("skill", skillName), zap.Int("kept", len(rows)))
		}
	}

	created, err := s.Assessments.ListQuestions(ctx, session.ID)
	if err != nil {
		return nil, false, err
	}
	return newQuestionViews(created), true, nil
}

func parseAnswerKeys(answers map[string]string) (map[uint]string, []uint, error) {
	parsed := make(map[uint]string, len(answers))
	ids := make([]uint, 0, len(answers))
	for key, selected := range answers {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil || id == 0 {
			return nil, nil, fmt.Errorf("%w: %q", util.ErrInvalidAnswerKey, key)
		}
		if _, dup := parsed[uint(id)]; !dup {
			ids = append(ids, uint(id))
		}
		parsed[uint(id)] = selected
	}
	return parsed, ids, nil
}

// Submit scores the active session and completes it. Results and the status
// change are written in one transaction.
func (s *AssessmentService) Submit(ctx context.Context, employeeID uint, answers map[string]string) (*SubmitResult, error) {
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswers
	}

	release, err := s.Lock.Acquire(ctx, employeeLockKey(employeeID))
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.Assessments.FindStarted(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, util.ErrNoActiveSession
	}

	selected, ids, err := parseAnswerKeys(answers)
	if err != nil {
		return nil, err
	}
	found, err := s.Assessments.FindQuestions(ctx, session.ID, ids)
	if err != nil {
		return nil, err
	}
	questions := make(map[uint]model.AssessmentQuestion, len(found))
	for _, q := range found {
		questions[q.ID] = q
	}
	for _, id := range ids {
		if _, ok := questions[id]; !ok {
			return nil, fmt.Errorf("%w: id %d", util.ErrQuestionNotFound, id)
		}
	}

	scores := ScoreAnswers(questions, selected)
	results := make([]model.AssessmentResult, 0, len(scores))
	summary := make(map[string]int, len(scores))
	for _, sc := range scores {
		results = append(results, model.AssessmentResult{SessionID: session.ID, SkillID: sc.SkillID, Score: sc.Score})
		summary[sc.Skill] = sc.Score
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Assessments.WithTx(tx)
		if err := repo.CreateResults(ctx, results); err != nil {
			return err
		}
		return repo.MarkCompleted(ctx, session, time.Now())
	})
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentsCompleted.Inc()
	s.Events.Record(ctx, employeeID, model.EventAssessmentCompleted, map[string]interface{}{
		"session_id": session.ID,
		"results":    summary,
	})
	return &SubmitResult{AssessmentID: session.ID, Results: summary}, nil
}

// LatestResults returns the scores of the most recently completed session.
func (s *AssessmentService) LatestResults(ctx context.Context, employeeID uint) (*ResultsView, error) {
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
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

	view := &ResultsView{SessionID: session.ID, CompletedAt: session.CompletedAt, Results: make(map[string]int, len(results))}
	for _, r := range results {
		if r.Skill != nil {
			view.Results[r.Skill.Name] = r.Score
		}
	}
	return view, nil
}
