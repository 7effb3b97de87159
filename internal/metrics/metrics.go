// Package metrics exposes Prometheus counters for the game server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "arabic_wordle"

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	GamesStarted  *prometheus.CounterVec // by mode
	GamesFinished *prometheus.CounterVec // by mode, status
	Guesses       prometheus.Counter     // accepted guesses
	Rejections    *prometheus.CounterVec // by reason
	LiveSessions  prometheus.Gauge
	HTTPRequests  *prometheus.CounterVec // by code
	HTTPDuration  prometheus.Histogram
}

// New registers all collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		GamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_started_total", Help: "Games started.",
		}, []string{"mode"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_finished_total", Help: "Games won or lost.",
		}, []string{"mode", "status"}),
		Guesses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "guesses_total", Help: "Accepted guesses.",
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "guess_rejections_total", Help: "Rejected submissions.",
		}, []string{"reason"}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "live_sessions", Help: "Sessions held in memory.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by status code.",
		}, []string{"code"}),
		HTTPDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.reg.MustRegister(
		m.GamesStarted, m.GamesFinished, m.Guesses, m.Rejections, m.LiveSessions,
		m.HTTPRequests, m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware counts requests by status and observes their latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(strconv.Itoa(status)).Inc()
		m.HTTPDuration.Observe(time.Since(start).Seconds())
	})
}
