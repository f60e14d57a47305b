package database

import (
	"errors"
	"fmt"
	"os"

	"skillpath_backend/internal/model"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type SeedFile struct {
	Skills []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
	} `yaml:"skills"`
	RoleProfiles []struct {
		Role           string   `yaml:"role"`
		ExpectedSkills []string `yaml:"expected_skills"`
	} `yaml:"role_profiles"`
	Contents []struct {
		Title           string `yaml:"title"`
		Skill           string `yaml:"skill"`
		Type            string `yaml:"type"`
		URL             string `yaml:"url"`
		Thumbnail       string `yaml:"thumbnail"`
		DurationMinutes int    `yaml:"duration_minutes"`
		Difficulty      string `yaml:"difficulty"`
		Source          string `yaml:"source"`
	} `yaml:"contents"`
}

// SeedFromFile loads catalog data from a YAML file. Existing rows (by skill
// name, role, or content title) are left untouched; a missing file is not an error.
func SeedFromFile(db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Log.Warn("Seed file not found, skipping", zap.String("path", path))
			return nil
		}
		return err
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return Seed(db, &seed)
}

func Seed(db *gorm.DB, seed *SeedFile) error {
	return db.Transaction(func(tx *gorm.DB) error {
		skills := make(map[string]uint)
		for _, s := range seed.Skills {
			category := model.SkillCategory(s.Category)
			if !category.Valid() {
				category = model.SkillCore
			}
			skill := model.Skill{Name: s.Name, Category: category}
			if err := tx.Where("name = ?", s.Name).FirstOrCreate(&skill).Error; err != nil {
				return err
			}
			skills[s.Name] = skill.ID
		}

		for _, p := range seed.RoleProfiles {
			profile := model.RoleSkillProfile{Role: p.Role, ExpectedSkills: model.StringList(p.ExpectedSkills)}
			if err := tx.Where("role = ?", p.Role).FirstOrCreate(&profile).Error; err != nil {
				return err
			}
		}

		for _, c := range seed.Contents {
			skillID, ok := skills[c.Skill]
			if !ok {
				skill := model.Skill{Name: c.Skill, Category: model.SkillCore}
				if err := tx.Where("name = ?", c.Skill).FirstOrCreate(&skill).Error; err != nil {
					return err
				}
				skillID = skill.ID
				skills[c.Skill] = skillID
			}
			contentType := model.ContentType(c.Type)
			if contentType != model.ContentArticle {
				contentType = model.ContentVideo
			}
			content := model.LearningContent{
				Title:           c.Title,
				SkillID:         skillID,
				ContentType:     contentType,
				ContentURL:      c.URL,
				ThumbnailURL:    c.Thumbnail,
				DurationMinutes: c.DurationMinutes,
				Difficulty:      c.Difficulty,
				Source:          c.Source,
			}
			if err := tx.Where("title = ?", c.Title).FirstOrCreate(&content).Error; err != nil {
				return err
			}
		}

		logger.Log.Info("Catalog seed applied",
			zap.Int("skills", len(seed.Skills)),
			zap.Int("role_profiles", len(seed.RoleProfiles)),
			zap.Int("contents", len(seed.Contents)))
		return nil
	})
}
