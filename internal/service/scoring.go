package service

import (
	"sort"
	"strings"

	"skillpath_backend/internal/model"
)

// SkillScore is the per-skill outcome of one submission.
type SkillScore struct {
	SkillID uint
	Skill   string
	Correct int
	Total   int
	Score   int
}

// ScoreAnswers tallies answers per skill. answers maps question id to the
// selected option; every id must be present in questions. Score is the integer
// floor of 100*correct/total. Output is ordered by skill id.
func ScoreAnswers(questions map[uint]model.AssessmentQuestion, answers map[uint]string) []SkillScore {
	tally := make(map[uint]*SkillScore)
	for qid, selected := range answers {
		q, ok := questions[qid]
		if !ok {
			continue
		}
		s, ok := tally[q.SkillID]
		if !ok {
			name := ""
			if q.Skill != nil {
				name = q.Skill.Name
			}
			s = &SkillScore{SkillID: q.SkillID, Skill: name}
			tally[q.SkillID] = s
		}
		s.Total++
		if normalizeOption(selected) == normalizeOption(q.CorrectOption) {
			s.Correct++
		}
	}

	scores := make([]SkillScore, 0, len(tally))
	for _, s := range tally {
		s.Score = 100 * s.Correct / s.Total
		scores = append(scores, *s)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].SkillID < scores[j].SkillID })
	return scores
}

func normalizeOption(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
