package service

import (
	"context"
	"errors"

	"driver_logsheet/internal/fixtures"
)

type DemoService struct {
	trips Trips
}

func NewDemoService(trips Trips) *DemoService {
	return &DemoService{trips: trips}
}

// Seed stores each bundled demo schedule that is not stored yet and reports how many
// were inserted.
func (s *DemoService) Seed(ctx context.Context) (int, error) {
	demos, err := fixtures.Demo()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, trip := range demos {
		_, err := s.trips.Get(ctx, trip.ID)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, ErrTripNotFound):
			return inserted, err
		}
		if _, err := s.trips.Create(ctx, trip); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
