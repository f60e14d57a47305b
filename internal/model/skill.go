package model

type SkillCategory string

const (
	SkillCore       SkillCategory = "CORE"
	SkillNiceToHave SkillCategory = "NICE_TO_HAVE"
)

func (c SkillCategory) Valid() bool {
	return c == SkillCore || c == SkillNiceToHave
}

// swagger:model Skill
type Skill struct {
	BaseModel
	Name     string        `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category SkillCategory `gorm:"size:20;not null;default:'CORE'" json:"category"`
}

func (Skill) TableName() string {
	return "skills"
}

type ContentType string

const (
	ContentVideo   ContentType = "VIDEO"
	ContentArticle ContentType = "ARTICLE"
)

// swagger:model LearningContent
type LearningContent struct {
	BaseModel
	Title           string      `gorm:"size:255;not null" json:"title"`
	SkillID         uint        `gorm:"index;not null" json:"skillId"`
	Skill           *Skill      `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	ContentType     ContentType `gorm:"size:20;not null;default:'VIDEO'" json:"contentType"`
	ThumbnailURL    string      `gorm:"size:500" json:"thumbnailUrl"`
	ContentURL      string      `gorm:"size:500;not null" json:"contentUrl"`
	DurationMinutes int         `gorm:"default:0" json:"durationMinutes"`
	Difficulty      string      `gorm:"size:50" json:"difficulty"`
	Source          string      `gorm:"size:100" json:"source"`
}

func (LearningContent) TableName() string {
	return "learning_contents"
}
