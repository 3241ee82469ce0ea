package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"driver_logsheet/internal/logger"
	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/metrics"
	"driver_logsheet/internal/models"
	"driver_logsheet/internal/repository"

	"github.com/google/uuid"
)

type TripService struct {
	tripRepo  repository.TripRepo
	eventRepo repository.EventRepo
	sheets    *LogSheetService
	metrics   Metrics
	log       *logger.Logger
	now       func() time.Time
}

func NewTripService(tripRepo repository.TripRepo, eventRepo repository.EventRepo, sheets *LogSheetService, m Metrics, log *logger.Logger) *TripService {
	if m == nil {
		m = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TripService{
		tripRepo:  tripRepo,
		eventRepo: eventRepo,
		sheets:    sheets,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// Create stores an upstream schedule, assigning an id when it has none. Every day is
// rendered once so that totals mismatches and malformed segments land in the audit
// log; they do not reject the schedule.
func (s *TripService) Create(ctx context.Context, trip models.TripSchedule) (models.TripSchedule, error) {
	if err := validateSchedule(trip); err != nil {
		return models.TripSchedule{}, err
	}
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return models.TripSchedule{}, err
	}

	now := s.now().UTC()
	events := []models.RenderEvent{{
		OccurredAt:  now,
		Type:        models.EventTripIngested,
		TripID:      trip.ID,
		Description: fmt.Sprintf("schedule %q stored with %d day(s)", trip.Name, len(trip.Days)),
	}}
	for _, d := range trip.Days {
		out := s.sheets.render(logsheet.DayInput(d), metrics.SourceIngest)
		events = append(events, auditDay(trip.ID, d, out, now)...)
	}
	s.appendEvents(ctx, events)
	s.refreshCount(ctx)

	return trip, nil
}

func (s *TripService) Get(ctx context.Context, id string) (models.TripSchedule, error) {
	trip, err := s.tripRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.TripSchedule{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
		}
		return models.TripSchedule{}, err
	}
	return trip, nil
}

func (s *TripService) List(ctx context.Context) ([]models.TripSummary, error) {
	return s.tripRepo.List(ctx)
}

func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.tripRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTripNotFound, id)
		}
		return err
	}
	s.appendEvents(ctx, []models.RenderEvent{{
		OccurredAt:  s.now().UTC(),
		Type:        models.EventTripDeleted,
		TripID:      id,
		Description: "schedule deleted",
	}})
	s.refreshCount(ctx)
	return nil
}

// appendEvents writes audit entries. The schedule is already stored, so failures are
// logged rather than returned.
func (s *TripService) appendEvents(ctx context.Context, events []models.RenderEvent) {
	for _, e := range events {
		if err := s.eventRepo.Append(ctx, e); err != nil {
			s.log.Warnw("audit_append_failed", "type", e.Type, "trip_id", e.TripID, "err", err)
		}
	}
}

func (s *TripService) refreshCount(ctx context.Context) {
	n, err := s.tripRepo.Count(ctx)
	if err != nil {
		s.log.Warnw("trip_count_failed", "err", err)
		return
	}
	s.metrics.SetTripsStored(n)
}

func validateSchedule(trip models.TripSchedule) error {
	if len(trip.Days) == 0 {
		return fmt.Errorf("%w: no days", ErrInvalidSchedule)
	}
	seen := make(map[int]struct{}, len(trip.Days))
	for _, d := range trip.Days {
		if d.Day < 1 {
			return fmt.Errorf("%w: day number %d must be >= 1", ErrInvalidSchedule, d.Day)
		}
		if _, dup := seen[d.Day]; dup {
			return fmt.Errorf("%w: day %d appears twice", ErrInvalidSchedule, d.Day)
		}
		seen[d.Day] = struct{}{}
	}
	if err := trip.CheckFinite(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return nil
}
