// Package fixtures ships the demo trip schedules and decodes schedule documents
// given as YAML or JSON.
package fixtures

import (
	"bytes"
	_ "embed"
	"fmt"

	"driver_logsheet/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed demo_trips.yaml
var demoTripsYAML []byte

// Demo returns the bundled demo schedules, freshly decoded on every call.
func Demo() ([]models.TripSchedule, error) {
	var trips []models.TripSchedule
	if err := yaml.Unmarshal(demoTripsYAML, &trips); err != nil {
		return nil, fmt.Errorf("decode demo trips: %w", err)
	}
	return trips, nil
}

// DemoTrip returns one demo schedule by id ("short" or "long").
func DemoTrip(id string) (models.TripSchedule, error) {
	trips, err := Demo()
	if err != nil {
		return models.TripSchedule{}, err
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return models.TripSchedule{}, fmt.Errorf("unknown demo trip %q", id)
}

// Decode reads a single schedule document. JSON input is accepted as YAML. Numbers
// that are NaN or infinite are rejected.
func Decode(data []byte) (models.TripSchedule, error) {
	var trip models.TripSchedule
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&trip); err != nil {
		return models.TripSchedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	// YAML spells NaN and infinity as .nan and .inf; JSON storage cannot hold them.
	if err := trip.CheckFinite(); err != nil {
		return models.TripSchedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	return trip, nil
}
