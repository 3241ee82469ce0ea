package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/metrics"
	"driver_logsheet/internal/models"
	"driver_logsheet/internal/repository"
)

// LogSheetService renders stored or ad hoc days. The renderer is swapped whole
// on layout changes, so a render in flight always sees one consistent layout.
type LogSheetService struct {
	tripRepo repository.TripRepo
	metrics  Metrics
	renderer atomic.Pointer[logsheet.Renderer]
}

func NewLogSheetService(tripRepo repository.TripRepo, l logsheet.Layout, m Metrics) (*LogSheetService, error) {
	if m == nil {
		m = nopMetrics{}
	}
	r, err := logsheet.NewRenderer(l)
	if err != nil {
		return nil, err
	}
	s := &LogSheetService{tripRepo: tripRepo, metrics: m}
	s.renderer.Store(r)
	m.LayoutApplied(l.HourWidth, false)
	return s, nil
}

// RenderDay renders day n of a stored schedule.
func (s *LogSheetService) RenderDay(ctx context.Context, tripID string, day int) (logsheet.Output, error) {
	trip, err := s.tripRepo.Get(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return logsheet.Output{}, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
		}
		return logsheet.Output{}, err
	}
	d, ok := trip.Day(day)
	if !ok {
		return logsheet.Output{}, fmt.Errorf("%w: trip %s has no day %d", ErrDayNotFound, tripID, day)
	}
	return s.render(logsheet.DayInput(d), metrics.SourceTrip), nil
}

// RenderInput renders a caller-supplied day. It never fails.
func (s *LogSheetService) RenderInput(_ context.Context, in logsheet.Input) logsheet.Output {
	return s.render(in, metrics.SourceInput)
}

func (s *LogSheetService) Layout() logsheet.Layout {
	return s.renderer.Load().Layout()
}

// SetLayout validates l and makes it the active layout.
func (s *LogSheetService) SetLayout(l logsheet.Layout) error {
	r, err := logsheet.NewRenderer(l)
	if err != nil {
		return err
	}
	s.renderer.Store(r)
	s.metrics.LayoutApplied(l.HourWidth, true)
	return nil
}

func (s *LogSheetService) render(in logsheet.Input, source string) logsheet.Output {
	start := time.Now()
	out := s.renderer.Load().Render(in)
	s.metrics.ObserveRender(source, time.Since(start), out.Totals.IsValid, len(out.Diagnostics))
	return out
}

// auditDay lists the problems found when rendering one day of a schedule.
func auditDay(tripID string, d models.TripDay, out logsheet.Output, at time.Time) []models.RenderEvent {
	var events []models.RenderEvent
	if !out.Totals.IsValid {
		events = append(events, models.RenderEvent{
			OccurredAt:  at,
			Type:        models.EventTotalsMismatch,
			TripID:      tripID,
			Day:         d.Day,
			Description: fmt.Sprintf("day %d totals sum to %.2fh", d.Day, out.Totals.Sum),
			Metadata: map[string]any{
				"sum":        out.Totals.Sum,
				"per_status": out.Totals.PerStatus,
				"derived":    out.Totals.Derived,
			},
		})
	}
	if len(out.Diagnostics) > 0 {
		events = append(events, models.RenderEvent{
			OccurredAt:  at,
			Type:        models.EventMalformedSegment,
			TripID:      tripID,
			Day:         d.Day,
			Description: fmt.Sprintf("day %d has %d malformed segment(s)", d.Day, len(out.Diagnostics)),
			Metadata:    map[string]any{"diagnostics": out.Diagnostics},
		})
	}
	return events
}
