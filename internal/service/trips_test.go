package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"driver_logsheet/internal/logsheet"
	"driver_logsheet/internal/metrics"
	"driver_logsheet/internal/models"
)

type tripsFixture struct {
	svc     *TripService
	repo    *fakeTripRepo
	events  *fakeEventRepo
	metrics *fakeMetrics
}

func newTripsFixture(t *testing.T, seed ...models.TripSchedule) tripsFixture {
	t.Helper()
	repo := newFakeTripRepo(seed...)
	events := &fakeEventRepo{}
	m := &fakeMetrics{}
	sheets, err := NewLogSheetService(repo, logsheet.DefaultLayout(), m)
	if err != nil {
		t.Fatalf("NewLogSheetService: %v", err)
	}
	svc := NewTripService(repo, events, sheets, m, nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 16, 6, 0, 0, 0, time.UTC) }
	return tripsFixture{svc: svc, repo: repo, events: events, metrics: m}
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		days []models.TripDay
	}{
		{"no days", nil},
		{"day zero", []models.TripDay{{Day: 0}}},
		{"duplicate day", []models.TripDay{{Day: 1}, {Day: 2}, {Day: 1}}},
		{"NaN segment", []models.TripDay{{Day: 1, Log: &models.DayLog{
			Driving: []models.Segment{{Start: math.NaN(), End: 5}},
		}}}},
		{"infinite total", []models.TripDay{{Day: 1, Log: &models.DayLog{
			Totals: &models.StatusTotals{OffDuty: math.Inf(1)},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTripsFixture(t)
			_, err := f.svc.Create(context.Background(), models.TripSchedule{Name: "x", Days: tt.days})
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("want ErrInvalidSchedule, got %v", err)
			}
			if len(f.repo.trips) != 0 || len(f.events.appended) != 0 {
				t.Fatalf("rejected schedule must not be stored or audited")
			}
		})
	}
}

func TestTripService_Create_AssignsIDAndAudits(t *testing.T) {
	f := newTripsFixture(t)

	trip := models.TripSchedule{
		Name: "Mixed",
		Days: []models.TripDay{
			{Day: 1, Log: fullDayLog()},
			{Day: 2, Log: &models.DayLog{
				Driving: []models.Segment{{Start: 0, End: 11}, {Start: 12, End: 30}},
				Totals:  &models.StatusTotals{OffDuty: 6, Driving: 11, OnDuty: 1},
			}},
		},
	}
	got, err := f.svc.Create(context.Background(), trip)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("id not assigned")
	}
	if _, ok := f.repo.trips[got.ID]; !ok {
		t.Fatalf("trip not stored under %q", got.ID)
	}
	if got.Days[1].Log.Driving[1].End != 30 {
		t.Fatalf("stored segments must be kept as received")
	}

	wantTypes := []string{models.EventTripIngested, models.EventTotalsMismatch, models.EventMalformedSegment}
	gotTypes := f.events.types()
	if len(gotTypes) != len(wantTypes) {
		t.Fatalf("want events %v, got %v", wantTypes, gotTypes)
	}
	for i := range wantTypes {
		if gotTypes[i] != wantTypes[i] {
			t.Fatalf("want events %v, got %v", wantTypes, gotTypes)
		}
	}
	for _, e := range f.events.appended[1:] {
		if e.TripID != got.ID || e.Day != 2 {
			t.Fatalf("audit event not tied to day 2: %+v", e)
		}
	}

	if f.metrics.tripsStored != 1 {
		t.Fatalf("trips gauge: want 1, got %d", f.metrics.tripsStored)
	}
	for _, r := range f.metrics.renders {
		if r.source != metrics.SourceIngest {
			t.Fatalf("ingest renders must be labelled, got %q", r.source)
		}
	}
}

func TestTripService_Create_KeepsIDAndSurvivesAuditFailure(t *testing.T) {
	f := newTripsFixture(t)
	f.events.appendErr = errBoom

	got, err := f.svc.Create(context.Background(), oneDayTrip("fixed", fullDayLog()))
	if err != nil {
		t.Fatalf("audit failure must not fail Create: %v", err)
	}
	if got.ID != "fixed" {
		t.Fatalf("caller id replaced: %q", got.ID)
	}
}

func TestTripService_Create_StorageError(t *testing.T) {
	f := newTripsFixture(t)
	f.repo.saveErr = errBoom
	if _, err := f.svc.Create(context.Background(), oneDayTrip("x", nil)); !errors.Is(err, errBoom) {
		t.Fatalf("want storage error, got %v", err)
	}
	if len(f.events.appended) != 0 {
		t.Fatalf("nothing should be audited when storage fails")
	}
}

func TestTripService_GetListDelete(t *testing.T) {
	f := newTripsFixture(t, oneDayTrip("a", fullDayLog()), oneDayTrip("b", fullDayLog()))
	ctx := context.Background()

	if _, err := f.svc.Get(ctx, "a"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := f.svc.Get(ctx, "zzz"); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("want ErrTripNotFound, got %v", err)
	}

	list, err := f.svc.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: %+v (%v)", list, err)
	}

	if err := f.svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.svc.Delete(ctx, "a"); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("second delete: want ErrTripNotFound, got %v", err)
	}
	if types := f.events.types(); len(types) != 1 || types[0] != models.EventTripDeleted {
		t.Fatalf("unexpected audit: %v", types)
	}
	if f.metrics.tripsStored != 1 {
		t.Fatalf("trips gauge: want 1, got %d", f.metrics.tripsStored)
	}
}
