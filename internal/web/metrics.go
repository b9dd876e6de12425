package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hpungsan/habits/internal/ops"
	"github.com/hpungsan/habits/internal/stats"
)

const namespace = "habits"

// Metrics holds the dashboard's Prometheus collectors. Each server gets its
// own registry so tests can build several servers in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	toggles         *prometheus.CounterVec
}

// NewMetrics registers the collectors. Habit gauges read the tracker at
// scrape time.
func NewMetrics(tracker *ops.Tracker) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route", "status"},
		),
		toggles: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "toggles_total",
				Help:      "Day toggles made from the dashboard",
			},
			[]string{"result"}, // result: completed, cleared
		),
	}

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "total",
		Help:      "Number of tracked habits",
	}, func() float64 {
		return float64(len(tracker.Habits()))
	})
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "completed_today",
		Help:      "Habits completed today",
	}, func() float64 {
		return float64(summaryOf(tracker).CompletedToday)
	})
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "best_streak_days",
		Help:      "Longest current streak across habits",
	}, func() float64 {
		return float64(summaryOf(tracker).BestStreak)
	})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordToggle counts one toggle by its outcome.
func (m *Metrics) RecordToggle(completed bool) {
	result := "cleared"
	if completed {
		result = "completed"
	}
	m.toggles.WithLabelValues(result).Inc()
}

// instrument observes request latency labelled by the matched route pattern.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

func summaryOf(tracker *ops.Tracker) stats.Summary {
	out, err := tracker.Summary(context.Background())
	if err != nil {
		return stats.Summary{}
	}
	return out.Summary
}
