package service

import (
	"testing"

	"skillpath_backend/internal/model"
)

func TestScoreAnswers(t *testing.T) {
	sql := &model.Skill{Name: "SQL"}
	sql.ID = 1
	py := &model.Skill{Name: "Python"}
	py.ID = 2

	questions := map[uint]model.AssessmentQuestion{}
	add := func(id uint, skill *model.Skill, correct string) {
		q := model.AssessmentQuestion{SkillID: skill.ID, Skill: skill, CorrectOption: correct}
		q.ID = id
		questions[id] = q
	}
	add(1, sql, "A")
	add(2, sql, "B")
	add(3, sql, "C")
	add(4, py, "A")
	add(5, py, "D")

	tests := []struct {
		name    string
		answers map[uint]string
		want    map[string]int
	}{
		{"all correct", map[uint]string{1: "A", 2: "B", 3: "C", 4: "A", 5: "D"}, map[string]int{"SQL": 100, "Python": 100}},
		{"floor of thirds", map[uint]string{1: "A", 2: "A", 3: "A"}, map[string]int{"SQL": 33}},
		{"two of three", map[uint]string{1: "A", 2: "B", 3: "D"}, map[string]int{"SQL": 66}},
		{"case and whitespace", map[uint]string{4: " a ", 5: "d"}, map[string]int{"Python": 100}},
		{"none correct", map[uint]string{4: "B", 5: "B"}, map[string]int{"Python": 0}},
		{"unknown ids ignored", map[uint]string{1: "A", 99: "A"}, map[string]int{"SQL": 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ScoreAnswers(questions, tt.answers)
			if len(scores) != len(tt.want) {
				t.Fatalf("got %d skills, want %d", len(scores), len(tt.want))
			}
			for i, s := range scores {
				if i > 0 && scores[i-1].SkillID >= s.SkillID {
					t.Errorf("scores not ordered by skill id")
				}
				if s.Score < 0 || s.Score > 100 {
					t.Errorf("%s score %d out of range", s.Skill, s.Score)
				}
				if want := tt.want[s.Skill]; s.Score != want {
					t.Errorf("%s = %d, want %d", s.Skill, s.Score, want)
				}
			}
		})
	}
}
