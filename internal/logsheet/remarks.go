package logsheet

import (
	"driver_logsheet/internal/models"
)

// Remark is one line of the remarks section.
type Remark struct {
	Time     string   `json:"time"`
	Location string   `json:"location"`
	Action   string   `json:"action"`
	Mileage  *float64 `json:"mileage,omitempty"`
}

var stopActions = map[models.StopType]string{
	models.StopStart:   "Start duty",
	models.StopPickup:  "Pickup - Loading",
	models.StopDropoff: "Dropoff - Unloading",
	models.StopFuel:    "Fuel stop",
	models.StopBreak:   "30-min break",
	models.StopRest:    "10-hour rest",
	models.StopEnd:     "End duty",
}

// ActionFor returns the canonical label for a stop type. Unknown types pass through.
func ActionFor(t models.StopType) string {
	if action, ok := stopActions[t]; ok {
		return action
	}
	return string(t)
}

// BuildRemarks lists every non-driving stop in input order.
func BuildRemarks(stops []models.Stop) []Remark {
	out := make([]Remark, 0, len(stops))
	for _, s := range stops {
		if s.Type == models.StopDriving {
			continue
		}
		time := s.Time
		if time == "" {
			time = s.StartTime
		}
		r := Remark{
			Time:     time,
			Location: s.Location,
			Action:   ActionFor(s.Type),
		}
		if s.Mileage != nil {
			m := *s.Mileage
			r.Mileage = &m
		}
		out = append(out, r)
	}
	return out
}

// DayTotalMiles is the odometer reading of the day's last stop, or 0.
func DayTotalMiles(stops []models.Stop) float64 {
	if len(stops) == 0 || stops[len(stops)-1].Mileage == nil {
		return 0
	}
	return *stops[len(stops)-1].Mileage
}
