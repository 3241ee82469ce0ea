package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"driver_logsheet/internal/models"
	"driver_logsheet/internal/repository"
)

// LogFilter supports audit log filtering by time range, type, trip and day.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // "", "TOTALS_MISMATCH", "MALFORMED_SEGMENT", "TRIP_INGESTED", "TRIP_DELETED"
	TripID string
	Day    int // 1-based; zero means every day
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errInvalidDay       = errors.New("invalid day: must be positive")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

func normalizeAndValidateFilter(f LogFilter) (repository.EventFilter, error) {
	out := repository.EventFilter{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Type:   normalizeEventType(f.Type),
		TripID: strings.TrimSpace(f.TripID),
		Day:    f.Day,
	}
	if out.Day < 0 {
		return repository.EventFilter{}, errInvalidDay
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return repository.EventFilter{}, errInvalidTimeRange
	}
	return out, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RenderEvent, error) {
	rf, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, rf)
}
