package model

import (
	"time"

	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionStarted   SessionStatus = "STARTED"
	SessionCompleted SessionStatus = "COMPLETED"
)

// swagger:model AssessmentSession
type AssessmentSession struct {
	BaseModel
	EmployeeID  uint          `gorm:"index;not null" json:"employeeId"`
	Status      SessionStatus `gorm:"size:20;index;not null;default:'STARTED'" json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}

// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	SessionID     uint              `gorm:"index;not null" json:"sessionId"`
	SkillID       uint              `gorm:"index;not null" json:"skillId"`
	Skill         *Skill            `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	QuestionText  string            `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONMap `json:"options"`
	CorrectOption string            `gorm:"size:255" json:"-"`
	Difficulty    string            `gorm:"size:50" json:"difficulty"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// swagger:model AssessmentResult
type AssessmentResult struct {
	BaseModel
	SessionID uint   `gorm:"uniqueIndex:idx_result_session_skill;not null" json:"sessionId"`
	SkillID   uint   `gorm:"uniqueIndex:idx_result_session_skill;not null" json:"skillId"`
	Skill     *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	Score     int    `gorm:"not null" json:"score"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}
