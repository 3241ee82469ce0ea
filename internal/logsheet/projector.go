package logsheet

import (
	"fmt"
	"math"
	"sort"

	"driver_logsheet/internal/models"
)

const (
	// floatSlack absorbs binary rounding when an hour difference is compared with a
	// tolerance, so 6.1-6 and 1.1-1 both count as exactly 0.1.
	floatSlack = 1e-9

	barWidth        = 4.0
	transitionWidth = 2.0
	transitionColor = "#475569"
)

// DutyBar is the horizontal stroke for one segment.
type DutyBar struct {
	Status models.DutyStatus `json:"status"`
	Start  float64           `json:"start"`
	End    float64           `json:"end"`
	X1     float64           `json:"x1"`
	X2     float64           `json:"x2"`
	Y      float64           `json:"y"`
	Color  string            `json:"color"`
	Width  float64           `json:"width"`
}

// TransitionMark is the vertical stroke joining two consecutive segments.
type TransitionMark struct {
	Hour  float64           `json:"hour"`
	From  models.DutyStatus `json:"from"`
	To    models.DutyStatus `json:"to"`
	X     float64           `json:"x"`
	Y1    float64           `json:"y1"`
	Y2    float64           `json:"y2"`
	Color string            `json:"color"`
	Width float64           `json:"width"`
}

// Diagnostic records a segment that was left out of the drawing. Start and End are
// nil when the bound was not a finite number, so a diagnostic always encodes to JSON.
type Diagnostic struct {
	Status models.DutyStatus `json:"status"`
	Index  int               `json:"index"`
	Start  *float64          `json:"start"`
	End    *float64          `json:"end"`
	Reason string            `json:"reason"`
}

func newDiagnostic(status models.DutyStatus, index int, seg models.Segment, reason string) Diagnostic {
	return Diagnostic{
		Status: status,
		Index:  index,
		Start:  finiteOrNil(seg.Start),
		End:    finiteOrNil(seg.End),
		Reason: reason,
	}
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Projection is the data-dependent part of a render.
type Projection struct {
	Bars        []DutyBar
	Marks       []TransitionMark
	Diagnostics []Diagnostic
	// Valid holds the accepted segments per row, in input order.
	Valid [rowCount][]models.Segment
}

// Projector converts per-row segment lists into bars and transition marks.
type Projector struct {
	geom      Geometry
	tolerance float64
}

func NewProjector(geom Geometry, adjacencyTolerance float64) Projector {
	return Projector{geom: geom, tolerance: adjacencyTolerance}
}

type rowSegment struct {
	models.Segment
	status models.DutyStatus
}

// Project draws every valid segment and joins chronologically adjacent ones.
// Overlaps are drawn as given; nothing is merged or trimmed.
func (p Projector) Project(log *models.DayLog) Projection {
	proj := Projection{
		Bars:        []DutyBar{},
		Marks:       []TransitionMark{},
		Diagnostics: []Diagnostic{},
	}
	if log == nil {
		return proj
	}

	var flat []rowSegment
	for _, info := range models.DutyStatuses() {
		for i, seg := range log.Segments(info.Status) {
			if reason := checkSegment(seg); reason != "" {
				proj.Diagnostics = append(proj.Diagnostics, newDiagnostic(info.Status, i, seg, reason))
				continue
			}
			proj.Valid[info.Status] = append(proj.Valid[info.Status], seg)
			flat = append(flat, rowSegment{Segment: seg, status: info.Status})

			y := p.geom.Y(info.Status)
			proj.Bars = append(proj.Bars, DutyBar{
				Status: info.Status,
				Start:  seg.Start,
				End:    seg.End,
				X1:     p.geom.X(seg.Start),
				X2:     p.geom.X(seg.End),
				Y:      y,
				Color:  info.Color,
				Width:  barWidth,
			})
		}
	}

	// flat is already in row order, so a stable sort breaks start ties by row.
	sort.SliceStable(flat, func(i, j int) bool { return flat[i].Start < flat[j].Start })

	for i := 0; i+1 < len(flat); i++ {
		cur, next := flat[i], flat[i+1]
		if math.Abs(cur.End-next.Start) >= p.tolerance-floatSlack {
			continue
		}
		proj.Marks = append(proj.Marks, TransitionMark{
			Hour:  cur.End,
			From:  cur.status,
			To:    next.status,
			X:     p.geom.X(cur.End),
			Y1:    p.geom.Y(cur.status),
			Y2:    p.geom.Y(next.status),
			Color: transitionColor,
			Width: transitionWidth,
		})
	}
	return proj
}

func checkSegment(s models.Segment) string {
	switch {
	case math.IsNaN(s.Start) || math.IsNaN(s.End):
		return "segment bound is not a number"
	case math.IsInf(s.Start, 0) || math.IsInf(s.End, 0):
		return "segment bound is infinite"
	case s.Start < 0 || s.Start > HoursPerDay:
		return fmt.Sprintf("start %v outside [0,24]", s.Start)
	case s.End < 0 || s.End > HoursPerDay:
		return fmt.Sprintf("end %v outside [0,24]", s.End)
	case s.Start >= s.End:
		return fmt.Sprintf("start %v is not before end %v", s.Start, s.End)
	default:
		return ""
	}
}
