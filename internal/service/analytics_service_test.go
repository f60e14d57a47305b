package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/testutil"

	"github.com/xuri/excelize/v2"
)

func TestAnalyticsSummaryEmpty(t *testing.T) {
	f := newFixture(t)
	summary, err := f.analytics.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalEmployees != 0 || summary.AssessmentsCompleted != 0 {
		t.Errorf("summary = %+v", summary)
	}
	for _, status := range []model.ProgressStatus{model.ProgressNotStarted, model.ProgressInProgress, model.ProgressDone} {
		if n, ok := summary.LearningStatus[string(status)]; !ok || n != 0 {
			t.Errorf("status %s = %d, present=%v", status, n, ok)
		}
	}
	if summary.TopSkillGaps == nil {
		t.Error("skill gaps must be an empty list")
	}
}

func TestAnalyticsSummary(t *testing.T) {
	f := newFixture(t)
	f.gen.Respond = respondPerSkill("SQL", "Python", "Excel")
	ana := testutil.CreateEmployee(t, f.db, "Ana", "Data Analyst", "SQL", "Python")
	ben := testutil.CreateEmployee(t, f.db, "Ben", "Data Analyst", "Python", "Excel")
	testutil.CreateEmployee(t, f.db, "Cy", "Engineer", "Go")
	c := testutil.CreateContent(t, f.db, "Python Basics", "Python")

	completeAssessment(t, f, ana.ID, map[string]int{"SQL": 5, "Python": 1})
	completeAssessment(t, f, ben.ID, map[string]int{"Python": 2, "Excel": 3})

	ctx := context.Background()
	if _, err := f.learning.Generate(ctx, ana.ID); err != nil {
		t.Fatalf("path: %v", err)
	}
	if _, err := f.learning.Generate(ctx, ben.ID); err != nil {
		t.Fatalf("path: %v", err)
	}
	if _, err := f.workflow.StartContent(ctx, ana.ID, c.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	summary, err := f.analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalEmployees != 3 || summary.AssessmentsCompleted != 2 {
		t.Errorf("totals = %d/%d", summary.TotalEmployees, summary.AssessmentsCompleted)
	}
	if summary.LearningStatus["IN_PROGRESS"] != 1 || summary.LearningStatus["NOT_STARTED"] != 1 {
		t.Errorf("learning status = %v", summary.LearningStatus)
	}

	want := []model.SkillGap{{Skill: "Python", Count: 2}, {Skill: "Excel", Count: 1}}
	if len(summary.TopSkillGaps) != len(want) {
		t.Fatalf("gaps = %+v", summary.TopSkillGaps)
	}
	for i, g := range want {
		if summary.TopSkillGaps[i] != g {
			t.Errorf("gap[%d] = %+v, want %+v", i, summary.TopSkillGaps[i], g)
		}
	}

	data, err := ExportSummaryXLSX(summary, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer book.Close()

	if v, _ := book.GetCellValue(summarySheet, "B3"); v != "3" {
		t.Errorf("total employees cell = %q", v)
	}
	if v, _ := book.GetCellValue(skillGapsSheet, "B2"); v != "Python" {
		t.Errorf("top gap cell = %q", v)
	}
	if v, _ := book.GetCellValue(skillGapsSheet, "C2"); v != "2" {
		t.Errorf("top gap count = %q", v)
	}
}
