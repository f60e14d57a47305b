package model

import "gorm.io/datatypes"

// PathItem is one content entry of a learning-path snapshot.
type PathItem struct {
	ContentID uint           `json:"contentId"`
	Title     string         `json:"title"`
	Skill     string         `json:"skill"`
	URL       string         `json:"contentUrl"`
	Thumbnail string         `json:"thumbnail"`
	Duration  int            `json:"duration"`
	Status    ProgressStatus `json:"status"`
}

// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	EmployeeID    uint           `gorm:"index;not null" json:"employeeId"`
	Status        ProgressStatus `gorm:"size:25;not null" json:"status"`
	Items         datatypes.JSON `json:"-"`
	MatchedSkills datatypes.JSON `json:"-"`
	MissingSkills datatypes.JSON `json:"-"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

func (p *LearningPath) ItemList() []PathItem {
	return decodeOrDefault(p.Items, []PathItem{})
}

func (p *LearningPath) MatchedSkillList() []string {
	return decodeOrDefault(p.MatchedSkills, []string{})
}

func (p *LearningPath) MissingSkillList() []string {
	return decodeOrDefault(p.MissingSkills, []string{})
}

func (p *LearningPath) SetItems(items []PathItem) {
	if items == nil {
		items = []PathItem{}
	}
	p.Items = encodeJSON(items)
}
