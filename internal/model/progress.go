package model

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "NOT_STARTED"
	ProgressInProgress ProgressStatus = "IN_PROGRESS"
	ProgressDone       ProgressStatus = "DONE"
)

// swagger:model LearningProgress
type LearningProgress struct {
	BaseModel
	EmployeeID uint             `gorm:"uniqueIndex:idx_progress_employee_content;not null" json:"employeeId"`
	ContentID  uint             `gorm:"uniqueIndex:idx_progress_employee_content;not null" json:"contentId"`
	Content    *LearningContent `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	Status     ProgressStatus   `gorm:"size:20;not null;default:'NOT_STARTED'" json:"status"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}

func (p *LearningProgress) Complete() {
	p.Status = ProgressDone
}
