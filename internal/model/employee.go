package model

import "gorm.io/datatypes"

// swagger:model Employee
type Employee struct {
	BaseModel
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:254" json:"email"`
	JobRole         string         `gorm:"size:255;index;not null" json:"jobRole"`
	Department      string         `gorm:"size:255" json:"department"`
	ExperienceYears int            `gorm:"default:0" json:"experienceYears"`
	Skills          datatypes.JSON `json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// SkillList returns the declared skills; a missing or malformed column yields an empty list.
func (e *Employee) SkillList() []string {
	return decodeOrDefault(e.Skills, []string{})
}

func (e *Employee) SetSkills(skills []string) {
	e.Skills = StringList(skills)
}

// swagger:model RoleSkillProfile
type RoleSkillProfile struct {
	BaseModel
	Role           string         `gorm:"size:255;uniqueIndex;not null" json:"role"`
	ExpectedSkills datatypes.JSON `json:"-"`
}

func (RoleSkillProfile) TableName() string {
	return "role_skill_profiles"
}

func (p *RoleSkillProfile) ExpectedSkillList() []string {
	return decodeOrDefault(p.ExpectedSkills, []string{})
}
