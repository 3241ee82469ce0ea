package logsheet

import (
	"driver_logsheet/internal/models"
)

// Op is the draw call a primitive maps to.
type Op string

const (
	OpLine Op = "line"
	OpText Op = "text"
	OpRect Op = "rect"
)

// Role says what a primitive depicts, so a painter can style or skip it.
type Role string

const (
	RoleBackground Role = "background"
	RoleHourLabel  Role = "hour-label"
	RoleMajorLine  Role = "major-line"   // every 6 hours
	RoleHourLine   Role = "hour-line"    // remaining hours
	RoleQuarter    Role = "quarter-line" // 15-minute ticks
	RoleRowNumber  Role = "row-number"
	RoleRowLabel   Role = "row-label"
	RoleRowDivider Role = "row-divider"
	RoleBorder     Role = "border"
)

// Primitive is one draw command in absolute coordinates.
// Lines use (X1,Y1)-(X2,Y2); text is anchored at (X1,Y1); rects span (X1,Y1)-(X2,Y2).
type Primitive struct {
	Op    Op      `json:"op"`
	Role  Role    `json:"role"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Text  string  `json:"text,omitempty"`
	Align string  `json:"align,omitempty"`
	Font  string  `json:"font,omitempty"`
	Color string  `json:"color,omitempty"`
	Fill  string  `json:"fill,omitempty"`
	Width float64 `json:"width,omitempty"`
}

const (
	colorBackground = "#ffffff"
	colorAxisLabel  = "#64748b"
	colorMajorLine  = "#94a3b8"
	colorHourLine   = "#e2e8f0"
	colorQuarter    = "#f1f5f9"
	colorRowNumber  = "#94a3b8"
	colorRowDivider = "#cbd5e1"
	colorBorder     = "#64748b"

	fontHourLabel = "10px Inter, sans-serif"
	fontRowLabel  = "11px Inter, sans-serif"

	hourLabelBaseline = 14.0
	rowLabelBaseline  = 22.0 // from the row top
	rowNumberX        = 8.0
	rowLabelX         = 22.0
	quartersPerHour   = 4
)

// GridPrimitives returns the static grid in paint order. It does not depend on any
// duty data, so an empty day still draws a complete sheet.
func (g Geometry) GridPrimitives() []Primitive {
	l := g.layout
	// background + 25 labels + 25 hour lines + 24*3 quarters + 3 per row + border
	out := make([]Primitive, 0, 2+2*(HoursPerDay+1)+HoursPerDay*(quartersPerHour-1)+3*rowCount)

	out = append(out, Primitive{
		Op: OpRect, Role: RoleBackground,
		X2: l.CanvasWidth(), Y2: l.CanvasHeight(),
		Fill: colorBackground,
	})

	top, bottom := g.Top(), g.Bottom()
	for h := 0; h <= HoursPerDay; h++ {
		x := g.X(float64(h))
		out = append(out, Primitive{
			Op: OpText, Role: RoleHourLabel,
			X1: x, Y1: hourLabelBaseline,
			Text: HourLabel(h), Align: "center", Font: fontHourLabel, Color: colorAxisLabel,
		})

		line := Primitive{Op: OpLine, X1: x, Y1: top, X2: x, Y2: bottom}
		if h%6 == 0 {
			line.Role, line.Color, line.Width = RoleMajorLine, colorMajorLine, 1
		} else {
			line.Role, line.Color, line.Width = RoleHourLine, colorHourLine, 0.5
		}
		out = append(out, line)

		if h == HoursPerDay {
			continue
		}
		for q := 1; q < quartersPerHour; q++ {
			qx := x + float64(q)*l.HourWidth/quartersPerHour
			out = append(out, Primitive{
				Op: OpLine, Role: RoleQuarter,
				X1: qx, Y1: top, X2: qx, Y2: bottom,
				Color: colorQuarter, Width: 0.5,
			})
		}
	}

	for _, info := range models.DutyStatuses() {
		rowTop := g.RowTop(info.Status)
		out = append(out,
			Primitive{
				Op: OpText, Role: RoleRowNumber,
				X1: rowNumberX, Y1: rowTop + rowLabelBaseline,
				Text: info.ShortLabel + ".", Align: "left", Font: fontRowLabel, Color: colorRowNumber,
			},
			Primitive{
				Op: OpText, Role: RoleRowLabel,
				X1: rowLabelX, Y1: rowTop + rowLabelBaseline,
				Text: info.Label, Align: "left", Font: fontRowLabel, Color: info.Color,
			},
			Primitive{
				Op: OpLine, Role: RoleRowDivider,
				X1: g.Left(), Y1: rowTop + l.RowHeight, X2: g.Right(), Y2: rowTop + l.RowHeight,
				Color: colorRowDivider, Width: 1,
			},
		)
	}

	out = append(out, Primitive{
		Op: OpRect, Role: RoleBorder,
		X1: g.Left(), Y1: top, X2: g.Right(), Y2: bottom,
		Color: colorBorder, Width: 1.5,
	})
	return out
}
