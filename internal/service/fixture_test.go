package service

import (
	"testing"

	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/testutil"

	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	gen         *testutil.FakeGenerator
	employees   *repository.EmployeeRepository
	assessments *repository.AssessmentRepository
	catalog     *repository.CatalogRepository
	progress    *repository.ProgressRepository
	paths       *repository.LearningPathRepository
	events      *EventService

	assessment *AssessmentService
	learning   *LearningPathService
	workflow   *ProgressService
	analytics  *AnalyticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &fixture{
		db:          db,
		gen:         &testutil.FakeGenerator{},
		employees:   repository.NewEmployeeRepository(db),
		assessments: repository.NewAssessmentRepository(db),
		catalog:     repository.NewCatalogRepository(db),
		progress:    repository.NewProgressRepository(db),
		paths:       repository.NewLearningPathRepository(db),
	}
	f.events = NewEventService(repository.NewLearningEventRepository(db))
	lock := NewLocalLock()
	f.assessment = NewAssessmentService(db, f.employees, f.assessments, f.catalog, f.gen, lock, f.events)
	f.learning = NewLearningPathService(f.employees, f.assessments, f.catalog, f.progress, f.paths, lock, f.events)
	f.workflow = NewProgressService(f.employees, f.assessments, f.paths, f.progress, f.catalog, f.events)
	f.analytics = NewAnalyticsService(f.employees, f.assessments, f.progress)
	return f
}
