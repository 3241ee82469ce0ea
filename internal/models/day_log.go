package models

// Segment is a contiguous interval, in hours since midnight, spent in one duty status.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration is End-Start; callers validate the segment first.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// StatusTotals holds hours per duty status.
type StatusTotals struct {
	OffDuty      float64 `json:"offDuty" yaml:"offDuty"`
	SleeperBerth float64 `json:"sleeperBerth" yaml:"sleeperBerth"`
	Driving      float64 `json:"driving" yaml:"driving"`
	OnDuty       float64 `json:"onDuty" yaml:"onDuty"`
}

// Get returns the hours recorded for s.
func (t StatusTotals) Get(s DutyStatus) float64 {
	switch s {
	case SleeperBerth:
		return t.SleeperBerth
	case Driving:
		return t.Driving
	case OnDuty:
		return t.OnDuty
	default:
		return t.OffDuty
	}
}

// Add adds hours to the bucket for s.
func (t *StatusTotals) Add(s DutyStatus, hours float64) {
	switch s {
	case SleeperBerth:
		t.SleeperBerth += hours
	case Driving:
		t.Driving += hours
	case OnDuty:
		t.OnDuty += hours
	default:
		t.OffDuty += hours
	}
}

// Sum adds the four buckets in row order.
func (t StatusTotals) Sum() float64 {
	return t.OffDuty + t.SleeperBerth + t.Driving + t.OnDuty
}

// DayLog is one day of upstream-computed duty segments. Totals is optional; when
// absent it is derived from the segments.
type DayLog struct {
	OffDuty      []Segment     `json:"offDuty" yaml:"offDuty"`
	SleeperBerth []Segment     `json:"sleeperBerth" yaml:"sleeperBerth"`
	Driving      []Segment     `json:"driving" yaml:"driving"`
	OnDuty       []Segment     `json:"onDuty" yaml:"onDuty"`
	Totals       *StatusTotals `json:"totals,omitempty" yaml:"totals,omitempty"`
}

// Segments returns the list for s.
func (l *DayLog) Segments(s DutyStatus) []Segment {
	if l == nil {
		return nil
	}
	switch s {
	case SleeperBerth:
		return l.SleeperBerth
	case Driving:
		return l.Driving
	case OnDuty:
		return l.OnDuty
	default:
		return l.OffDuty
	}
}
