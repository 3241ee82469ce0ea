package models

import "time"

type StopType string

const (
	StopStart   StopType = "start"
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopFuel    StopType = "fuel"
	StopBreak   StopType = "break"
	StopRest    StopType = "rest"
	StopEnd     StopType = "end"
	StopDriving StopType = "driving"
)

// Stop is one entry of a day's stop list, in chronological input order.
// Driving entries describe transit and carry from/to instead of a location.
type Stop struct {
	Type      StopType `json:"type" yaml:"type"`
	Location  string   `json:"location,omitempty" yaml:"location,omitempty"`
	Time      string   `json:"time,omitempty" yaml:"time,omitempty"`           // HH:MM
	StartTime string   `json:"startTime,omitempty" yaml:"startTime,omitempty"` // HH:MM, driving entries
	EndTime   string   `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	From      string   `json:"from,omitempty" yaml:"from,omitempty"`
	To        string   `json:"to,omitempty" yaml:"to,omitempty"`
	Duration  float64  `json:"duration,omitempty" yaml:"duration,omitempty"` // hours
	Miles     float64  `json:"miles,omitempty" yaml:"miles,omitempty"`
	Mileage   *float64 `json:"mileage,omitempty" yaml:"mileage,omitempty"` // odometer since trip start
	Lat       *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
	Day       int      `json:"day,omitempty" yaml:"day,omitempty"`
}

type Location struct {
	Label string  `json:"label" yaml:"label"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
}

type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// TripDay is one calendar day of a schedule.
type TripDay struct {
	Day   int     `json:"day" yaml:"day"`
	Date  string  `json:"date" yaml:"date"`
	Stops []Stop  `json:"stops" yaml:"stops"`
	Log   *DayLog `json:"log,omitempty" yaml:"log,omitempty"`
}

type Route struct {
	Waypoints []LatLng `json:"waypoints" yaml:"waypoints"`
}

type CycleWarning struct {
	Type           string  `json:"type" yaml:"type"`
	Message        string  `json:"message" yaml:"message"`
	ExcessHours    float64 `json:"excessHours" yaml:"excessHours"`
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
}

// TripSchedule is the document produced by the upstream HOS planner.
type TripSchedule struct {
	ID                string        `json:"id" yaml:"id"`
	Name              string        `json:"name" yaml:"name"`
	Origin            Location      `json:"origin" yaml:"origin"`
	Pickup            Location      `json:"pickup" yaml:"pickup"`
	Dropoff           Location      `json:"dropoff" yaml:"dropoff"`
	CycleHoursUsed    float64       `json:"cycleHoursUsed" yaml:"cycleHoursUsed"`
	TotalMiles        float64       `json:"totalMiles" yaml:"totalMiles"`
	TotalDays         int           `json:"totalDays" yaml:"totalDays"`
	TotalDrivingHours float64       `json:"totalDrivingHours" yaml:"totalDrivingHours"`
	Days              []TripDay     `json:"days" yaml:"days"`
	Route             Route         `json:"route" yaml:"route"`
	Warning           *CycleWarning `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Day returns the day with the given 1-based number.
func (t TripSchedule) Day(n int) (TripDay, bool) {
	for _, d := range t.Days {
		if d.Day == n {
			return d, true
		}
	}
	return TripDay{}, false
}

// TripSummary is the list view of a stored schedule.
type TripSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TotalDays int       `json:"total_days"`
	CreatedAt time.Time `json:"created_at"`
}
