// Package logsheet turns one day of duty-status segments and stops into drawing
// primitives, remarks and a totals check for a Record of Duty Status grid.
//
// Everything here is a pure function of its inputs: no I/O, no retained state.
package logsheet

import (
	"errors"
	"fmt"
)

// HoursPerDay is the width of the grid in hours.
const HoursPerDay = 24

// Default layout values, in drawing units.
const (
	DefaultHeaderHeight = 24.0
	DefaultRowHeight    = 36.0
	DefaultLabelWidth   = 100.0
	DefaultHourWidth    = 28.0
	DefaultPadding      = 10.0

	// DefaultAdjacencyTolerance is the largest gap, in hours, between one segment's end
	// and the next segment's start that still counts as the same instant (about 6 minutes).
	DefaultAdjacencyTolerance = 0.1

	// DefaultTotalsTolerance is the allowed drift, in hours, of the 24-hour sum.
	DefaultTotalsTolerance = 0.01
)

var ErrInvalidLayout = errors.New("invalid layout")

// Layout holds the overridable grid constants.
type Layout struct {
	HeaderHeight       float64 `json:"headerHeight" mapstructure:"header_height"`
	RowHeight          float64 `json:"rowHeight" mapstructure:"row_height"`
	LabelWidth         float64 `json:"labelWidth" mapstructure:"label_width"`
	HourWidth          float64 `json:"hourWidth" mapstructure:"hour_width"`
	Padding            float64 `json:"padding" mapstructure:"padding"`
	AdjacencyTolerance float64 `json:"adjacencyTolerance" mapstructure:"adjacency_tolerance"`
	TotalsTolerance    float64 `json:"totalsTolerance" mapstructure:"totals_tolerance"`
}

func DefaultLayout() Layout {
	return Layout{
		HeaderHeight:       DefaultHeaderHeight,
		RowHeight:          DefaultRowHeight,
		LabelWidth:         DefaultLabelWidth,
		HourWidth:          DefaultHourWidth,
		Padding:            DefaultPadding,
		AdjacencyTolerance: DefaultAdjacencyTolerance,
		TotalsTolerance:    DefaultTotalsTolerance,
	}
}

// Validate rejects non-positive dimensions and tolerances. Padding may be zero.
func (l Layout) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"header height", l.HeaderHeight},
		{"row height", l.RowHeight},
		{"label width", l.LabelWidth},
		{"hour width", l.HourWidth},
		{"adjacency tolerance", l.AdjacencyTolerance},
		{"totals tolerance", l.TotalsTolerance},
	}
	for _, c := range checks {
		if !(c.v > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidLayout, c.name, c.v)
		}
	}
	if !(l.Padding >= 0) {
		return fmt.Errorf("%w: padding must be >= 0, got %v", ErrInvalidLayout, l.Padding)
	}
	return nil
}

// GridWidth is the width of the 24 hour columns.
func (l Layout) GridWidth() float64 {
	return HoursPerDay * l.HourWidth
}

// GridHeight is the height of the four duty rows.
func (l Layout) GridHeight() float64 {
	return float64(rowCount) * l.RowHeight
}

// CanvasWidth and CanvasHeight size the whole drawing surface.
func (l Layout) CanvasWidth() float64 {
	return l.LabelWidth + l.GridWidth() + l.Padding
}

func (l Layout) CanvasHeight() float64 {
	return l.HeaderHeight + l.GridHeight() + l.Padding
}
