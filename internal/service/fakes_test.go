package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"driver_logsheet/internal/models"
	"driver_logsheet/internal/repository"
)

// fakeTripRepo is an in-memory repository.TripRepo.
type fakeTripRepo struct {
	mu      sync.Mutex
	trips   map[string]models.TripSchedule
	saveErr error
	getErr  error
}

func newFakeTripRepo(trips ...models.TripSchedule) *fakeTripRepo {
	r := &fakeTripRepo{trips: map[string]models.TripSchedule{}}
	for _, t := range trips {
		r.trips[t.ID] = t
	}
	return r
}

func (r *fakeTripRepo) Save(_ context.Context, trip models.TripSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.trips[trip.ID] = trip
	return nil
}

func (r *fakeTripRepo) Get(_ context.Context, id string) (models.TripSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return models.TripSchedule{}, r.getErr
	}
	t, ok := r.trips[id]
	if !ok {
		return models.TripSchedule{}, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTripRepo) List(context.Context) ([]models.TripSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.TripSummary, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, models.TripSummary{ID: t.ID, Name: t.Name, TotalDays: len(t.Days)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTripRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.trips, id)
	return nil
}

func (r *fakeTripRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trips), nil
}

type renderObservation struct {
	source      string
	totalsValid bool
	malformed   int
}

// fakeMetrics records what the services report.
type fakeMetrics struct {
	mu          sync.Mutex
	renders     []renderObservation
	tripsStored int
	hourWidths  []float64
	reloads     int
}

func (m *fakeMetrics) ObserveRender(source string, _ time.Duration, totalsValid bool, malformed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders = append(m.renders, renderObservation{source, totalsValid, malformed})
}

func (m *fakeMetrics) SetTripsStored(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tripsStored = n
}

func (m *fakeMetrics) LayoutApplied(hourWidth float64, reload bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hourWidths = append(m.hourWidths, hourWidth)
	if reload {
		m.reloads++
	}
}

var errBoom = errors.New("boom")

func oneDayTrip(id string, log *models.DayLog) models.TripSchedule {
	return models.TripSchedule{
		ID:   id,
		Name: "Test " + id,
		Days: []models.TripDay{{Day: 1, Date: "2026-01-16", Log: log}},
	}
}

func fullDayLog() *models.DayLog {
	return &models.DayLog{OffDuty: []models.Segment{{Start: 0, End: 24}}}
}
