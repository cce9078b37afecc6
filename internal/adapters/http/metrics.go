package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported on /metrics.
// Each Metrics owns its registry so several servers (and tests) can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	expansions   prometheus.Counter
	symbols      prometheus.Histogram
	branches     prometheus.Histogram
	interpretErr prometheus.Counter
	cacheHits    prometheus.Counter
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arbor_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_expansions_total",
			Help: "Grammar expansions performed",
		}),
		symbols: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_expanded_symbols",
			Help:    "Length of expanded sequences",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		branches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_branches",
			Help:    "Branches emitted per interpretation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		interpretErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_interpret_errors_total",
			Help: "Interpretations aborted by an unbalanced bracket",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_cache_hits_total",
			Help: "Generate requests served from the branch cache",
		}),
	}
	m.Registry.MustRegister(m.requests, m.duration, m.expansions, m.symbols, m.branches, m.interpretErr, m.cacheHits)
	return m
}

// Hooks returns engine lifecycle hooks feeding the expansion collectors.
// Pass them to the generator (runner.WithLifecycleHooks).
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnExpand: func(e *domain.ExpandEvent) {
			m.expansions.Inc()
			m.symbols.Observe(float64(e.Symbols))
		},
		OnInterpret: func(e *domain.InterpretEvent) {
			if e.IsError {
				m.interpretErr.Inc()
				return
			}
			m.branches.Observe(float64(e.Branches))
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) cacheHit() {
	m.cacheHits.Inc()
}

// instrument records request counts and latency labelled by chi route pattern.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
