package repository

import (
	"context"
	"errors"
	"time"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// WithTx binds the repository to an open transaction.
func (r *AssessmentRepository) WithTx(tx *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: tx}
}

// FindStarted returns the employee's STARTED session, or nil when there is none.
func (r *AssessmentRepository) FindStarted(ctx context.Context, employeeID uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.SessionStarted).
		Order("id").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *AssessmentRepository) CreateSession(ctx context.Context, session *model.AssessmentSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

// LatestCompleted orders by completed_at then id, both descending.
func (r *AssessmentRepository) LatestCompleted(ctx context.Context, employeeID uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.SessionCompleted).
		Order("completed_at DESC").
		Order("id DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *AssessmentRepository) HasAnySession(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.AssessmentSession{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) HasCompleted(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.AssessmentSession{}).
		Where("employee_id = ? AND status = ?", employeeID, model.SessionCompleted).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) CountCompleted(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.AssessmentSession{}).
		Where("status = ?", model.SessionCompleted).
		Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) ListQuestions(ctx context.Context, sessionID uint) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	err := r.DB.WithContext(ctx).
		Preload("Skill").
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&questions).Error
	return questions, err
}

func (r *AssessmentRepository) CreateQuestions(ctx context.Context, questions []model.AssessmentQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Omit("Skill").Create(&questions).Error
}

// FindQuestions loads the given ids restricted to the session.
func (r *AssessmentRepository) FindQuestions(ctx context.Context, sessionID uint, ids []uint) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	err := r.DB.WithContext(ctx).
		Preload("Skill").
		Where("session_id = ? AND id IN ?", sessionID, ids).
		Find(&questions).Error
	return questions, err
}

func (r *AssessmentRepository) CreateResults(ctx context.Context, results []model.AssessmentResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Omit("Skill").Create(&results).Error
}

func (r *AssessmentRepository) MarkCompleted(ctx context.Context, session *model.AssessmentSession, at time.Time) error {
	session.Status = model.SessionCompleted
	session.CompletedAt = &at
	return r.DB.WithContext(ctx).Model(session).Updates(map[string]interface{}{
		"status":       model.SessionCompleted,
		"completed_at": at,
	}).Error
}

// ListResults returns the session's results ordered by id, with skill loaded.
func (r *AssessmentRepository) ListResults(ctx context.Context, sessionID uint) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	err := r.DB.WithContext(ctx).
		Preload("Skill").
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&results).Error
	return results, err
}

// TopSkillGaps counts results below threshold per skill name.
func (r *AssessmentRepository) TopSkillGaps(ctx context.Context, threshold, limit int) ([]model.SkillGap, error) {
	var rows []struct {
		Skill    string
		GapCount int64
	}
	err := r.DB.WithContext(ctx).Model(&model.AssessmentResult{}).
		Select("skills.name AS skill, COUNT(assessment_results.id) AS gap_count").
		Joins("JOIN skills ON skills.id = assessment_results.skill_id").
		Where("assessment_results.score < ?", threshold).
		Group("skills.name").
		Order("gap_count DESC, skills.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	gaps := make([]model.SkillGap, 0, len(rows))
	for _, row := range rows {
		gaps = append(gaps, model.SkillGap{Skill: row.Skill, Count: row.GapCount})
	}
	return gaps, nil
}
