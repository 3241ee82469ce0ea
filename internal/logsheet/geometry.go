package logsheet

import (
	"math"
	"strconv"

	"driver_logsheet/internal/models"
)

const rowCount = models.StatusCount

// Geometry maps hours and duty rows to drawing coordinates.
//
// Inputs outside the grid are clamped: hours to [0,24], statuses to the four rows.
// Segments are validated before they reach the geometry, so clamping never moves a
// valid segment.
type Geometry struct {
	layout Layout
}

func NewGeometry(l Layout) Geometry {
	return Geometry{layout: l}
}

// X returns the horizontal position of an hour of the day.
func (g Geometry) X(hour float64) float64 {
	return g.layout.LabelWidth + clampHour(hour)*g.layout.HourWidth
}

// Y returns the vertical center of a duty row.
func (g Geometry) Y(status models.DutyStatus) float64 {
	return g.RowTop(status) + g.layout.RowHeight/2
}

// RowTop returns the top edge of a duty row.
func (g Geometry) RowTop(status models.DutyStatus) float64 {
	return g.layout.HeaderHeight + float64(clampRow(status))*g.layout.RowHeight
}

// Left, Right, Top and Bottom are the grid edges.
func (g Geometry) Left() float64   { return g.layout.LabelWidth }
func (g Geometry) Right() float64  { return g.layout.LabelWidth + g.layout.GridWidth() }
func (g Geometry) Top() float64    { return g.layout.HeaderHeight }
func (g Geometry) Bottom() float64 { return g.layout.HeaderHeight + g.layout.GridHeight() }

// HourLabel is "M" at midnight, "N" at noon and the number otherwise.
func HourLabel(hour int) string {
	switch hour {
	case 0, HoursPerDay:
		return "M"
	case 12:
		return "N"
	default:
		return strconv.Itoa(hour)
	}
}

func clampHour(h float64) float64 {
	switch {
	case math.IsNaN(h):
		return 0
	case h < 0:
		return 0
	case h > HoursPerDay:
		return HoursPerDay
	default:
		return h
	}
}

func clampRow(s models.DutyStatus) models.DutyStatus {
	switch {
	case s < models.OffDuty:
		return models.OffDuty
	case s > models.OnDuty:
		return models.OnDuty
	default:
		return s
	}
}
