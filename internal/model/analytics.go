package model

// SkillGap is one row of the top skill-gap ranking.
type SkillGap struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

type AnalyticsSummary struct {
	TotalEmployees       int64            `json:"totalEmployees"`
	AssessmentsCompleted int64            `json:"assessmentsCompleted"`
	LearningStatus       map[string]int64 `json:"learningStatus"`
	TopSkillGaps         []SkillGap       `json:"topSkillGaps"`
}
