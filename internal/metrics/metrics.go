package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render sources, used as the "source" label.
const (
	SourceTrip   = "trip"
	SourceInput  = "input"
	SourceIngest = "ingest"
)

type Collector struct {
	reg *prometheus.Registry

	Renders           *prometheus.CounterVec // source label: trip|input|ingest
	TotalsInvalid     prometheus.Counter
	MalformedSegments prometheus.Counter
	RenderDuration    prometheus.Histogram

	TripsStored   prometheus.Gauge
	LayoutReloads prometheus.Counter
	HourWidth     prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logsheet_renders_total",
			Help: "Total log sheet renders.",
		}, []string{"source"}),
		TotalsInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logsheet_totals_invalid_total",
			Help: "Renders whose duty totals did not add up to 24 hours.",
		}),
		MalformedSegments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logsheet_malformed_segments_total",
			Help: "Segments left out of a render because they were malformed.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "logsheet_render_duration_seconds",
			Help:    "Duration of a single day render.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 15),
		}),
		TripsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logsheet_trips_stored",
			Help: "Number of trip schedules currently stored.",
		}),
		LayoutReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logsheet_layout_reloads_total",
			Help: "Number of layout changes applied at runtime.",
		}),
		HourWidth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "logsheet_layout_hour_width",
			Help: "Hour column width of the active layout.",
		}),
	}

	reg.MustRegister(
		c.Renders, c.TotalsInvalid, c.MalformedSegments, c.RenderDuration,
		c.TripsStored, c.LayoutReloads, c.HourWidth,
		collectors.NewGoCollector(),
	)
	return c
}

// ObserveRender records one finished render.
func (c *Collector) ObserveRender(source string, d time.Duration, totalsValid bool, malformed int) {
	c.Renders.WithLabelValues(source).Inc()
	c.RenderDuration.Observe(d.Seconds())
	if !totalsValid {
		c.TotalsInvalid.Inc()
	}
	if malformed > 0 {
		c.MalformedSegments.Add(float64(malformed))
	}
}

func (c *Collector) SetTripsStored(n int) { c.TripsStored.Set(float64(n)) }

// LayoutApplied records the layout in force; reload is false for the initial layout.
func (c *Collector) LayoutApplied(hourWidth float64, reload bool) {
	c.HourWidth.Set(hourWidth)
	if reload {
		c.LayoutReloads.Inc()
	}
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
