package logsheet

import (
	"driver_logsheet/internal/models"
)

// Input is one day to render.
type Input struct {
	Log        *models.DayLog `json:"log,omitempty"`
	Stops      []models.Stop  `json:"stops"`
	Day        int            `json:"day"`
	Date       string         `json:"date"`
	TotalMiles float64        `json:"totalMiles"`
}

// DayInput builds the input for one day of a schedule. Total miles come from the
// day's last stop.
func DayInput(d models.TripDay) Input {
	return Input{
		Log:        d.Log,
		Stops:      d.Stops,
		Day:        d.Day,
		Date:       d.Date,
		TotalMiles: DayTotalMiles(d.Stops),
	}
}

// Meta echoes the header fields of the sheet.
type Meta struct {
	Day        int     `json:"day"`
	Date       string  `json:"date"`
	TotalMiles float64 `json:"totalMiles"`
	Period     string  `json:"period"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Output is everything a painter needs; coordinates are absolute.
type Output struct {
	Meta            Meta                `json:"meta"`
	Legend          []models.StatusInfo `json:"legend"`
	Grid            []Primitive         `json:"grid"`
	DutyBars        []DutyBar           `json:"dutyBars"`
	TransitionMarks []TransitionMark    `json:"transitionMarks"`
	Remarks         []Remark            `json:"remarks"`
	Totals          TotalsCheck         `json:"totals"`
	Diagnostics     []Diagnostic        `json:"diagnostics"`
}

const period = "Midnight to Midnight"

// Renderer runs the whole pass for a fixed layout. It keeps no state between calls
// and is safe for concurrent use.
type Renderer struct {
	layout    Layout
	geom      Geometry
	projector Projector
}

func NewRenderer(l Layout) (*Renderer, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	geom := NewGeometry(l)
	return &Renderer{
		layout:    l,
		geom:      geom,
		projector: NewProjector(geom, l.AdjacencyTolerance),
	}, nil
}

// Layout returns the constants this renderer was built with.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render recomputes every primitive from scratch. Bad segments and totals that do not
// add up are reported in the output, never returned as errors.
func (r *Renderer) Render(in Input) Output {
	proj := r.projector.Project(in.Log)

	return Output{
		Meta: Meta{
			Day:        in.Day,
			Date:       in.Date,
			TotalMiles: in.TotalMiles,
			Period:     period,
			Width:      r.layout.CanvasWidth(),
			Height:     r.layout.CanvasHeight(),
		},
		Legend:          models.DutyStatuses(),
		Grid:            r.geom.GridPrimitives(),
		DutyBars:        proj.Bars,
		TransitionMarks: proj.Marks,
		Remarks:         BuildRemarks(in.Stops),
		Totals:          CheckTotals(in.Log, proj.Valid, r.layout.TotalsTolerance),
		Diagnostics:     proj.Diagnostics,
	}
}
