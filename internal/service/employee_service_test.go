package service

import (
	"context"
	"errors"
	"testing"

	"skillpath_backend/internal/util"
)

func TestEmployeeService(t *testing.T) {
	f := newFixture(t)
	svc := NewEmployeeService(f.employees)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateEmployeeInput{Name: "Ana", JobRole: "Data Analyst", ExperienceYears: 3, Skills: []string{"SQL"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Ana Lima"
	skills := []string{"SQL", "Python"}
	updated, err := svc.Update(ctx, e.ID, UpdateEmployeeInput{Name: &name, Skills: &skills})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || len(updated.SkillList()) != 2 || updated.JobRole != "Data Analyst" {
		t.Errorf("updated = %+v", NewEmployeeView(updated))
	}

	negative := -1
	if _, err := svc.Update(ctx, e.ID, UpdateEmployeeInput{ExperienceYears: &negative}); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("negative years err = %v", err)
	}
	if _, err := svc.Get(ctx, 999); !errors.Is(err, util.ErrEmployeeNotFound) {
		t.Errorf("get unknown err = %v", err)
	}

	public, err := svc.ListPublic(ctx)
	if err != nil || len(public) != 1 || public[0].Name != name {
		t.Errorf("public = %+v, %v", public, err)
	}
}
