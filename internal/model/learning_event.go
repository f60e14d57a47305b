package model

import "gorm.io/datatypes"

const (
	EventAssessmentStarted     = "assessment_started"
	EventAssessmentCompleted   = "assessment_completed"
	EventLearningPathGenerated = "learning_path_generated"
	EventContentStarted        = "content_started"
	EventContentCompleted      = "content_completed"
)

// swagger:model LearningEvent
type LearningEvent struct {
	BaseModel
	EmployeeID uint           `gorm:"index;not null" json:"employeeId"`
	EventType  string         `gorm:"size:50;index;not null" json:"eventType"`
	Metadata   datatypes.JSON `json:"metadata"`
}

func (LearningEvent) TableName() string {
	return "learning_events"
}
