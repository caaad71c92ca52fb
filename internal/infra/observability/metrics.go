package observability

import (
	"time"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the client and the sandbox.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the sandbox /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	apiErrors       *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	serverRequests  *prometheus.CounterVec
	codesIssued     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankup_client_request_duration_seconds",
				Help:    "Duration of BankUp API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		apiErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankup_client_errors_total",
				Help: "Total failed BankUp API calls by operation.",
			},
			[]string{"operation"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankup_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankup_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankup_client_requests_total",
				Help: "Total BankUp API calls by outcome.",
			},
			[]string{"status"},
		),
		serverRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankup_sandbox_http_requests_total",
				Help: "Total HTTP requests served by the sandbox.",
			},
			[]string{"method", "class"},
		),
		codesIssued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankup_sandbox_codes_issued_total",
				Help: "Verification codes issued by type.",
			},
			[]string{"type"},
		),
	}
}

// RecordRequestDuration records the duration of an API call.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrAPIError increments the error counter of an operation.
func (m *Metrics) IncrAPIError(operation string) {
	m.apiErrors.WithLabelValues(operation).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// IncrServerRequest counts a request served by the sandbox.
func (m *Metrics) IncrServerRequest(method, class string) {
	m.serverRequests.WithLabelValues(method, class).Inc()
}

// IncrCodeIssued counts a verification code issued by the sandbox.
func (m *Metrics) IncrCodeIssued(kind string) {
	m.codesIssued.WithLabelValues(kind).Inc()
}

// Snapshot reads the client counters back for the `stats` command.
func (m *Metrics) Snapshot() *domain.ClientStats {
	success := getCounterValue(m.requestsTotal, "success")
	errorCount := getCounterValue(m.requestsTotal, "error")
	total := success + errorCount

	var hits, misses float64
	for _, name := range []string{"profile", "payers"} {
		hits += getCounterValue(m.cacheHits, name)
		misses += getCounterValue(m.cacheMisses, name)
	}

	stats := &domain.ClientStats{
		TotalRequests: total,
		ErrorCount:    errorCount,
		CacheHits:     hits,
		CacheMisses:   misses,
		AvgLatencyMs:  m.avgLatencyMs(),
	}
	if total > 0 {
		stats.ErrorRate = errorCount / total
	}
	if hits+misses > 0 {
		stats.CacheHitRate = hits / (hits + misses)
	}
	return stats
}

// avgLatencyMs averages every operation of the duration histogram.
func (m *Metrics) avgLatencyMs() float64 {
	families, err := m.Registry.Gather()
	if err != nil {
		return 0
	}
	var sum float64
	var count uint64
	for _, mf := range families {
		if mf.GetName() != "bankup_client_request_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			h := metric.GetHistogram()
			sum += h.GetSampleSum()
			count += h.GetSampleCount()
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) * 1000
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
