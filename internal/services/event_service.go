package services

import (
	"context"

	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/store"
)

const (
	defaultEventLimit = 20
	maxEventLimit     = 100
)

// EventServiceProvider defines the interface for activity log services.
type EventServiceProvider interface {
	Record(ctx context.Context, userID, eventType, message string) error
	GetRecentEvents(ctx context.Context, userID string, limit int) ([]models.Event, error)
}

// EventService records and lists per-user activity entries.
type EventService struct {
	events store.EventStore
}

// NewEventService creates a new EventService.
func NewEventService(events store.EventStore) *EventService {
	return &EventService{events: events}
}

// Record appends an entry to the user's activity log.
func (s *EventService) Record(ctx context.Context, userID, eventType, message string) error {
	return s.events.Insert(ctx, models.Event{
		UserID:  userID,
		Type:    eventType,
		Message: message,
	})
}

// GetRecentEvents returns the user's newest events, most recent first.
func (s *EventService) GetRecentEvents(ctx context.Context, userID string, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}
	return s.events.ListByUser(ctx, userID, limit)
}
