package service

import (
	"context"
	"encoding/json"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// EventService records learner activity. Recording never fails the caller.
type EventService struct {
	Repo *repository.LearningEventRepository
}

func NewEventService(repo *repository.LearningEventRepository) *EventService {
	return &EventService{Repo: repo}
}

func (s *EventService) Record(ctx context.Context, employeeID uint, eventType string, metadata map[string]interface{}) {
	if s == nil || s.Repo == nil {
		return
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		raw = []byte("{}")
	}
	event := &model.LearningEvent{
		EmployeeID: employeeID,
		EventType:  eventType,
		Metadata:   datatypes.JSON(raw),
	}
	if err := s.Repo.Create(context.WithoutCancel(ctx), event); err != nil {
		logger.Log.Warn("Failed to record learning event",
			zap.Uint("employee_id", employeeID),
			zap.String("event", eventType),
			zap.Error(err))
	}
}

func (s *EventService) List(ctx context.Context, employeeID uint, limit int) ([]model.LearningEvent, error) {
	return s.Repo.ListByEmployee(ctx, employeeID, limit)
}
