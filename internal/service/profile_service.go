package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/pkg/llm"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	profileQuotaMessage = "API quota exceeded. Please try again later."
	profileEmptyMessage = "No response received"
)

type ProfileSummary struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Summary    string   `json:"summary"`
}

func fallbackProfile(summary string) ProfileSummary {
	return ProfileSummary{Strengths: []string{}, Weaknesses: []string{}, Summary: summary}
}

// ProfileService synthesizes a strengths/weaknesses summary. It is recomputed on
// every call and never persisted.
type ProfileService struct {
	Catalog   *repository.CatalogRepository
	Generator llm.Generator
}

func NewProfileService(catalog *repository.CatalogRepository, generator llm.Generator) *ProfileService {
	return &ProfileService{Catalog: catalog, Generator: generator}
}

func buildProfilePrompt(e *model.Employee, expected []string) string {
	skills, _ := json.Marshal(e.SkillList())
	role := "N/A"
	if expected != nil {
		b, _ := json.Marshal(expected)
		role = string(b)
	}
	return fmt.Sprintf(`Analyze employee skills against the expectations of their role.
Return ONLY JSON in this shape:
{
  "strengths": [],
  "weaknesses": [],
  "summary": ""
}

Skills: %s
Role (%s) expected skills: %s
Experience: %d years`, skills, e.JobRole, role, e.ExperienceYears)
}

// Build never returns an error; failures degrade to a summary message with empty lists.
func (s *ProfileService) Build(ctx context.Context, e *model.Employee) ProfileSummary {
	var expected []string
	if profile, err := s.Catalog.FindRoleProfile(ctx, e.JobRole); err == nil {
		expected = profile.ExpectedSkillList()
	}

	text, err := s.Generator.Generate(ctx, buildProfilePrompt(e, expected))
	if err != nil {
		if llm.IsRateLimited(err) {
			logger.Log.Warn("Profile synthesis rate limited", zap.Uint("employee_id", e.ID), zap.Error(err))
			return fallbackProfile(profileQuotaMessage)
		}
		logger.Log.Error("Profile synthesis failed", zap.Uint("employee_id", e.ID), zap.Error(err))
		return fallbackProfile("Error: " + err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return fallbackProfile(profileEmptyMessage)
	}

	var summary ProfileSummary
	if err := llm.ParseObject(text, &summary); err != nil {
		logger.Log.Warn("Profile response not parseable", zap.Uint("employee_id", e.ID), zap.Error(err))
		return fallbackProfile("Failed to parse response: " + causeOf(err))
	}
	if summary.Strengths == nil {
		summary.Strengths = []string{}
	}
	if summary.Weaknesses == nil {
		summary.Weaknesses = []string{}
	}
	return summary
}

func causeOf(err error) string {
	var e *llm.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}
