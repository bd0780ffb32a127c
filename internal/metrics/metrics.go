// Package metrics exposes run counters and timings for dashboard generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives pipeline events.
type Recorder interface {
	RecordTag(statement, status string)
	RecordFetch(source string, d time.Duration, err error)
	RecordCacheLookup(host string, hit bool)
	RecordRun(status string, d time.Duration)
	RecordRows(statement string, rows int)
}

// Prometheus implements Recorder on its own registry so batch runs can
// export a textfile without the global default collectors.
type Prometheus struct {
	Registry *prometheus.Registry

	tags        *prometheus.CounterVec
	fetches     *prometheus.CounterVec
	fetchTime   *prometheus.HistogramVec
	cacheLookup *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runTime     prometheus.Histogram
	rows        *prometheus.GaugeVec
}

// NewPrometheus creates and registers the dashboard metrics.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		Registry: reg,
		tags: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdashboard_tags_total",
				Help: "Statement tags processed, by outcome",
			},
			[]string{"statement", "status"},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdashboard_fetches_total",
				Help: "Outbound data fetches, by source and result",
			},
			[]string{"source", "result"},
		),
		fetchTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockdashboard_fetch_duration_seconds",
				Help:    "Duration of outbound data fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheLookup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdashboard_http_cache_lookups_total",
				Help: "HTTP response cache lookups, by host and result",
			},
			[]string{"host", "result"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdashboard_runs_total",
				Help: "Dashboard generation runs, by status",
			},
			[]string{"status"},
		),
		runTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockdashboard_run_duration_seconds",
				Help:    "Duration of dashboard generation runs in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),
		rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockdashboard_statement_rows",
				Help: "Rows in the last rendered statement",
			},
			[]string{"statement"},
		),
	}
	reg.MustRegister(p.tags, p.fetches, p.fetchTime, p.cacheLookup, p.runs, p.runTime, p.rows)
	return p
}

func (p *Prometheus) RecordTag(statement, status string) {
	p.tags.WithLabelValues(statement, status).Inc()
}

func (p *Prometheus) RecordFetch(source string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.fetches.WithLabelValues(source, result).Inc()
	p.fetchTime.WithLabelValues(source).Observe(d.Seconds())
}

func (p *Prometheus) RecordCacheLookup(host string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookup.WithLabelValues(host, result).Inc()
}

func (p *Prometheus) RecordRun(status string, d time.Duration) {
	p.runs.WithLabelValues(status).Inc()
	p.runTime.Observe(d.Seconds())
}

func (p *Prometheus) RecordRows(statement string, rows int) {
	p.rows.WithLabelValues(statement).Set(float64(rows))
}

// WriteTextfile writes the registry in the node exporter textfile format.
func (p *Prometheus) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.Registry)
}
