// Package metrics собирает метрики обработки таблиц для Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"route-spreadsheet-go/internal/service"
)

type Collector struct {
	reg *prometheus.Registry

	RunsStarted  *prometheus.CounterVec // kind: route|climate
	RunsFinished *prometheus.CounterVec // kind, status: completed|failed
	Stages       *prometheus.CounterVec // kind, stage
	RunDuration  *prometheus.HistogramVec

	ElevationSkipped prometheus.Counter

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RunsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spreadsheet_runs_started_total",
			Help: "Total spreadsheet runs started.",
		}, []string{"kind"}),
		RunsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spreadsheet_runs_finished_total",
			Help: "Total spreadsheet runs finished, by outcome.",
		}, []string{"kind", "status"}),
		Stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spreadsheet_stages_total",
			Help: "Total pipeline stage events.",
		}, []string{"kind", "stage"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spreadsheet_run_duration_seconds",
			Help:    "Duration of a spreadsheet run from start to completion or failure.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"kind"}),
		ElevationSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spreadsheet_elevation_skipped_total",
			Help: "Runs that continued without elevation data.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spreadsheet_nats_published_total",
			Help: "Total NATS progress messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spreadsheet_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spreadsheet_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spreadsheet_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
	}

	reg.MustRegister(
		c.RunsStarted, c.RunsFinished, c.Stages, c.RunDuration,
		c.ElevationSkipped,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
	)

	return c
}

// Observe учитывает событие обработки
func (c *Collector) Observe(event service.Event) {
	kind := string(event.Kind)
	c.Stages.WithLabelValues(kind, string(event.Stage)).Inc()

	switch event.Stage {
	case service.StageStarted:
		c.RunsStarted.WithLabelValues(kind).Inc()
	case service.StageElevationSkipped:
		c.ElevationSkipped.Inc()
	case service.StageCompleted, service.StageFailed:
		c.RunsFinished.WithLabelValues(kind, string(event.Stage)).Inc()
		c.RunDuration.WithLabelValues(kind).Observe(event.Elapsed.Seconds())
	}
}

func (c *Collector) NATSPublishedInc() { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }

func (c *Collector) PublishObserve(d time.Duration) { c.PublishDuration.Observe(d.Seconds()) }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
