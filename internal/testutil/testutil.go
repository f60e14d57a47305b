// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"

	"skillpath_backend/internal/model"
	"skillpath_backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateEmployee(t *testing.T, db *gorm.DB, name, role string, skills ...string) *model.Employee {
	t.Helper()
	e := &model.Employee{Name: name, JobRole: role, Email: strings.ToLower(name) + "@example.com"}
	e.SetSkills(skills)
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func CreateSkill(t *testing.T, db *gorm.DB, name string) *model.Skill {
	t.Helper()
	s := &model.Skill{Name: name, Category: model.SkillCore}
	if err := db.Where("name = ?", name).FirstOrCreate(s).Error; err != nil {
		t.Fatalf("create skill: %v", err)
	}
	return s
}

func CreateContent(t *testing.T, db *gorm.DB, title, skill string) *model.LearningContent {
	t.Helper()
	s := CreateSkill(t, db, skill)
	c := &model.LearningContent{
		Title:           title,
		SkillID:         s.ID,
		ContentType:     model.ContentVideo,
		ContentURL:      "https://example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		DurationMinutes: 30,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}
	return c
}

// FakeGenerator returns scripted responses. Respond, when set, wins over Response/Err.
type FakeGenerator struct {
	Response string
	Err      error
	Respond  func(prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (f *FakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Respond != nil {
		return f.Respond(prompt)
	}
	return f.Response, f.Err
}

func (f *FakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *FakeGenerator) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// MCQJSON builds a valid n-question array whose correct option is always "A".
func MCQJSON(skill string, n int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"question":"` + skill + ` question","options":{"A":"a","B":"b","C":"c","D":"d"},"correct_option":"A"}`)
	}
	b.WriteString("]")
	return b.String()
}
