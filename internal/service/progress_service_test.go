package service

import (
	"context"
	"errors"
	"testing"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/testutil"
	"skillpath_backend/internal/util"
)

func TestWorkflowBar(t *testing.T) {
	tests := []struct {
		name    string
		status  WorkflowStatus
		percent int
		current string
	}{
		{"profile only", WorkflowStatus{ProfileLoaded: true, AssessmentPending: true}, 25, StepAssessmentCompleted},
		{"assessed", WorkflowStatus{ProfileLoaded: true, AssessmentCompleted: true}, 50, StepRecommendationsGenerated},
		{"recommended", WorkflowStatus{ProfileLoaded: true, AssessmentCompleted: true, RecommendationsGenerated: true}, 75, StepLearningInProgress},
		{"all", WorkflowStatus{ProfileLoaded: true, AssessmentCompleted: true, RecommendationsGenerated: true, LearningInProgress: true}, 100, StepLearningInProgress},
		{"learning without path", WorkflowStatus{ProfileLoaded: true, LearningInProgress: true}, 50, StepAssessmentCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := tt.status.Bar()
			if bar.ProgressPercent != tt.percent {
				t.Errorf("percent = %d, want %d", bar.ProgressPercent, tt.percent)
			}
			if bar.CurrentStep != tt.current {
				t.Errorf("current = %s, want %s", bar.CurrentStep, tt.current)
			}
			if len(bar.Steps) != 4 {
				t.Errorf("steps = %d", len(bar.Steps))
			}
		})
	}
}

func TestWorkflowFollowsRecords(t *testing.T) {
	f := newFixture(t)
	f.gen.Respond = respondPerSkill("Python")
	e := testutil.CreateEmployee(t, f.db, "Ana", "Data Analyst", "Python")
	c := testutil.CreateContent(t, f.db, "Python Basics", "Python")
	ctx := context.Background()

	status, err := f.workflow.Workflow(ctx, e.ID)
	if err != nil {
		t.Fatalf("workflow: %v", err)
	}
	if !status.ProfileLoaded || !status.AssessmentPending || status.AssessmentCompleted {
		t.Errorf("fresh workflow = %+v", status)
	}

	if _, err := f.assessment.Start(ctx, e.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	status, _ = f.workflow.Workflow(ctx, e.ID)
	if status.AssessmentPending {
		t.Error("pending should clear once a session exists")
	}

	views, _, err := f.assessment.GenerateQuestions(ctx, e.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := f.assessment.Submit(ctx, e.ID, answerWithScores(views, nil)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.learning.Generate(ctx, e.ID); err != nil {
		t.Fatalf("path: %v", err)
	}
	if _, err := f.workflow.StartContent(ctx, e.ID, c.ID); err != nil {
		t.Fatalf("start content: %v", err)
	}

	bar, err := f.workflow.ProgressBar(ctx, e.ID)
	if err != nil {
		t.Fatalf("bar: %v", err)
	}
	if bar.ProgressPercent != 100 {
		t.Errorf("percent = %d, want 100", bar.ProgressPercent)
	}

	if _, err := f.workflow.Workflow(ctx, 404); !errors.Is(err, util.ErrEmployeeNotFound) {
		t.Errorf("unknown employee err = %v", err)
	}
}

func TestContentProgressTransitions(t *testing.T) {
	f := newFixture(t)
	e := testutil.CreateEmployee(t, f.db, "Ana", "Data Analyst", "Python")
	c := testutil.CreateContent(t, f.db, "Python Basics", "Python")
	ctx := context.Background()

	if _, err := f.workflow.CompleteContent(ctx, e.ID, c.ID); !errors.Is(err, util.ErrProgressNotFound) {
		t.Errorf("complete before start err = %v", err)
	}
	if _, err := f.workflow.StartContent(ctx, e.ID, 999); !errors.Is(err, util.ErrContentNotFound) {
		t.Errorf("unknown content err = %v", err)
	}

	p, err := f.workflow.StartContent(ctx, e.ID, c.ID)
	if err != nil || p.Status != model.ProgressInProgress {
		t.Fatalf("start = %+v, %v", p, err)
	}
	p, err = f.workflow.CompleteContent(ctx, e.ID, c.ID)
	if err != nil || p.Status != model.ProgressDone {
		t.Fatalf("complete = %+v, %v", p, err)
	}

	p, err = f.workflow.StartContent(ctx, e.ID, c.ID)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if p.Status != model.ProgressDone {
		t.Errorf("restart status = %s, DONE must not revert", p.Status)
	}

	events, err := f.events.List(ctx, e.ID, 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 3 || events[0].EventType != model.EventContentStarted {
		t.Errorf("events = %d, newest %q", len(events), events[0].EventType)
	}
}
