// Package metrics records how a run went. A run is a short-lived job, so
// metrics live in a private registry and are pushed to a Pushgateway when
// one is configured instead of being scraped.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const subsystem = "currents"

// Metrics holds the collectors for one run. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rowsFormatted prometheus.Gauge
	fetchLatency  prometheus.Histogram
	posts         *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
	requests      *prometheus.HistogramVec
}

// New creates and registers the run's collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rowsFormatted: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "rows_formatted",
			Help:      "Prediction rows in the last formatted report.",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "fetch_duration_seconds",
			Help:      "Time to retrieve predictions from NOAA.",
			Buckets:   []float64{0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "posts_total",
			Help:      "Post attempts by outcome.",
		}, []string{"outcome"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful post.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "Outbound HTTP request latencies in seconds.",
			Buckets:   []float64{0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		}, []string{"code", "method"}),
	}

	m.registry.MustRegister(
		m.rowsFormatted,
		m.fetchLatency,
		m.posts,
		m.lastSuccess,
		m.requests,
	)
	return m
}

// Registry exposes the collectors, mainly to tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchLatency.Observe(d.Seconds())
}

func (m *Metrics) SetRowsFormatted(n int) {
	if m == nil {
		return
	}
	m.rowsFormatted.Set(float64(n))
}

// ObservePost counts a post attempt. Outcome is one of "sent", "skipped" or
// "error".
func (m *Metrics) ObservePost(outcome string, at time.Time) {
	if m == nil {
		return
	}
	m.posts.WithLabelValues(outcome).Inc()
	if outcome != "error" {
		m.lastSuccess.Set(float64(at.Unix()))
	}
}

// InstrumentClient wraps the client's transport so every request it makes is
// timed. The client is modified in place and returned.
func (m *Metrics) InstrumentClient(c *http.Client) *http.Client {
	if m == nil {
		return c
	}
	next := c.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	c.Transport = promhttp.InstrumentRoundTripperDuration(m.requests, next)
	return c
}

// Push sends the run's metrics to the Pushgateway at url under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m == nil {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return errors.Wrapf(err, "push metrics to %s", url)
	}
	return nil
}
