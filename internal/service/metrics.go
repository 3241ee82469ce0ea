package service

import "time"

// Metrics receives render and storage observations. *metrics.Collector satisfies it.
type Metrics interface {
	ObserveRender(source string, d time.Duration, totalsValid bool, malformed int)
	SetTripsStored(n int)
	LayoutApplied(hourWidth float64, reload bool)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRender(string, time.Duration, bool, int) {}
func (nopMetrics) SetTripsStored(int)                             {}
func (nopMetrics) LayoutApplied(float64, bool)                    {}
