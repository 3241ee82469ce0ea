package models

import (
	"fmt"
	"math"
)

type namedValue struct {
	name string
	v    float64
}

// CheckFinite reports the first NaN or infinite number in the schedule. Such values
// cannot be stored as JSON, so they are refused at intake.
func (t TripSchedule) CheckFinite() error {
	named := []namedValue{
		{"cycleHoursUsed", t.CycleHoursUsed},
		{"totalMiles", t.TotalMiles},
		{"totalDrivingHours", t.TotalDrivingHours},
		{"origin", t.Origin.Lat}, {"origin", t.Origin.Lng},
		{"pickup", t.Pickup.Lat}, {"pickup", t.Pickup.Lng},
		{"dropoff", t.Dropoff.Lat}, {"dropoff", t.Dropoff.Lng},
	}
	if t.Warning != nil {
		named = append(named, namedValue{"warning.excessHours", t.Warning.ExcessHours})
	}
	for _, n := range named {
		if !isFinite(n.v) {
			return fmt.Errorf("%s is %v", n.name, n.v)
		}
	}
	for i, p := range t.Route.Waypoints {
		if !isFinite(p.Lat) || !isFinite(p.Lng) {
			return fmt.Errorf("route waypoint %d is not finite", i)
		}
	}
	for _, d := range t.Days {
		if err := d.checkFinite(); err != nil {
			return fmt.Errorf("day %d: %w", d.Day, err)
		}
	}
	return nil
}

func (d TripDay) checkFinite() error {
	for i, s := range d.Stops {
		for _, v := range []float64{s.Duration, s.Miles} {
			if !isFinite(v) {
				return fmt.Errorf("stop %d has %v", i, v)
			}
		}
		for _, p := range []*float64{s.Mileage, s.Lat, s.Lng} {
			if p != nil && !isFinite(*p) {
				return fmt.Errorf("stop %d has %v", i, *p)
			}
		}
	}
	if d.Log == nil {
		return nil
	}
	for _, info := range DutyStatuses() {
		for i, seg := range d.Log.Segments(info.Status) {
			if !isFinite(seg.Start) || !isFinite(seg.End) {
				return fmt.Errorf("%s segment %d is [%v, %v]", info.Key, i, seg.Start, seg.End)
			}
		}
	}
	if t := d.Log.Totals; t != nil {
		if !isFinite(t.Sum()) {
			return fmt.Errorf("totals are not finite: %+v", *t)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
