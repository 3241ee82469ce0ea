package logsheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"driver_logsheet/internal/fixtures"
	"driver_logsheet/internal/models"
)

func shortHaulInput(t *testing.T) Input {
	t.Helper()
	trip, err := fixtures.DemoTrip("short")
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	day, ok := trip.Day(1)
	if !ok {
		t.Fatalf("demo has no day 1")
	}
	return DayInput(day)
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(DefaultLayout())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRender_ShortHaulDay(t *testing.T) {
	out := newTestRenderer(t).Render(shortHaulInput(t))

	if out.Meta.Day != 1 || out.Meta.Date != "2026-01-16" || out.Meta.TotalMiles != 270 {
		t.Fatalf("unexpected meta: %+v", out.Meta)
	}
	if out.Meta.Period != "Midnight to Midnight" {
		t.Fatalf("unexpected period %q", out.Meta.Period)
	}
	if len(out.Legend) != 4 || out.Legend[2].Key != "driving" {
		t.Fatalf("unexpected legend: %+v", out.Legend)
	}
	if len(out.Grid) != 136 {
		t.Fatalf("want 136 grid primitives, got %d", len(out.Grid))
	}
	if len(out.DutyBars) != 6 {
		t.Fatalf("want 6 bars, got %d", len(out.DutyBars))
	}

	wantMarks := []struct {
		hour     float64
		from, to models.DutyStatus
	}{
		{6, models.OffDuty, models.Driving},
		{8, models.Driving, models.OnDuty},
		{9, models.OnDuty, models.Driving},
		{11.5, models.Driving, models.OnDuty},
		{12.5, models.OnDuty, models.OffDuty},
	}
	if len(out.TransitionMarks) != len(wantMarks) {
		t.Fatalf("want %d marks, got %d", len(wantMarks), len(out.TransitionMarks))
	}
	for i, w := range wantMarks {
		m := out.TransitionMarks[i]
		if m.Hour != w.hour || m.From != w.from || m.To != w.to {
			t.Fatalf("mark %d: want %+v, got %+v", i, w, m)
		}
	}

	wantActions := []string{"Start duty", "Pickup - Loading", "Dropoff - Unloading", "End duty"}
	if len(out.Remarks) != len(wantActions) {
		t.Fatalf("want %d remarks, got %d", len(wantActions), len(out.Remarks))
	}
	for i, a := range wantActions {
		if out.Remarks[i].Action != a {
			t.Fatalf("remark %d: want %q, got %q", i, a, out.Remarks[i].Action)
		}
	}

	want := models.StatusTotals{OffDuty: 17.5, Driving: 4.5, OnDuty: 2}
	if out.Totals.PerStatus != want || out.Totals.Sum != 24 || !out.Totals.IsValid {
		t.Fatalf("unexpected totals: %+v", out.Totals)
	}
	if len(out.Diagnostics) != 0 || len(out.Totals.Discrepancies) != 0 {
		t.Fatalf("clean demo reported problems: %+v %+v", out.Diagnostics, out.Totals.Discrepancies)
	}
}

func TestRender_LongHaulDaysAddUp(t *testing.T) {
	trip, err := fixtures.DemoTrip("long")
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	r := newTestRenderer(t)
	for _, day := range trip.Days {
		out := r.Render(DayInput(day))
		if out.Meta.TotalMiles != DayTotalMiles(day.Stops) {
			t.Fatalf("day %d total miles %v", day.Day, out.Meta.TotalMiles)
		}
		if !out.Totals.IsValid {
			t.Fatalf("day %d totals sum to %v", day.Day, out.Totals.Sum)
		}
		if len(out.Diagnostics) != 0 {
			t.Fatalf("day %d diagnostics: %+v", day.Day, out.Diagnostics)
		}
	}
}

func TestRender_NilLogStillDrawsGrid(t *testing.T) {
	out := newTestRenderer(t).Render(Input{Day: 2})

	if len(out.Grid) != 136 {
		t.Fatalf("grid missing: %d primitives", len(out.Grid))
	}
	if len(out.DutyBars) != 0 || len(out.TransitionMarks) != 0 || len(out.Remarks) != 0 {
		t.Fatalf("expected an empty sheet, got %+v", out)
	}
	if out.Totals.IsValid {
		t.Fatalf("an empty day cannot add up to 24 hours")
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := newTestRenderer(t)
	in := shortHaulInput(t)

	first, err := json.Marshal(r.Render(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(r.Render(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("two renders of the same input differ")
	}
}

func TestRender_CustomLayoutScalesGeometry(t *testing.T) {
	l := DefaultLayout()
	l.HourWidth = 40
	l.LabelWidth = 120
	r, err := NewRenderer(l)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out := r.Render(shortHaulInput(t))
	if out.Meta.Width != 120+24*40+10 {
		t.Fatalf("unexpected width %v", out.Meta.Width)
	}
	if out.DutyBars[0].X1 != 120 {
		t.Fatalf("first bar should start at the label edge, got %v", out.DutyBars[0].X1)
	}
	if r.Layout() != l {
		t.Fatalf("renderer did not keep its layout")
	}
}

func TestNewRenderer_InvalidLayout(t *testing.T) {
	l := DefaultLayout()
	l.RowHeight = 0
	if _, err := NewRenderer(l); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("want ErrInvalidLayout, got %v", err)
	}
}

func TestRender_NonFiniteSegmentsStillEncode(t *testing.T) {
	in := Input{
		Day: 1,
		Log: &models.DayLog{
			OffDuty: []models.Segment{{Start: 0, End: 10}},
			Driving: []models.Segment{
				{Start: math.NaN(), End: 5},
				{Start: 10, End: math.Inf(1)},
				{Start: math.Inf(-1), End: math.NaN()},
			},
		},
	}
	out := newTestRenderer(t).Render(in)
	if len(out.Diagnostics) != 3 || len(out.DutyBars) != 1 {
		t.Fatalf("diagnostics=%d bars=%d", len(out.Diagnostics), len(out.DutyBars))
	}

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Diagnostics []struct {
			Start *float64 `json:"start"`
			End   *float64 `json:"end"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	d := decoded.Diagnostics
	if d[0].Start != nil || d[0].End == nil || *d[0].End != 5 {
		t.Fatalf("diagnostic 0: %+v", d[0])
	}
	if d[1].Start == nil || *d[1].Start != 10 || d[1].End != nil {
		t.Fatalf("diagnostic 1: %+v", d[1])
	}
	if d[2].Start != nil || d[2].End != nil {
		t.Fatalf("diagnostic 2: %+v", d[2])
	}
}
