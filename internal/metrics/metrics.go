package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts upstream traffic by provider and outcome.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	DetailCacheHits  prometheus.Counter
	RateLimited      prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tag",
			Name:      "upstream_requests_total",
			Help:      "Number of upstream API requests by provider and status",
		}, []string{"provider", "status"}),
		DetailCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tag",
			Name:      "detail_cache_hits_total",
			Help:      "Number of event detail requests served from the session cache",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tag",
			Name:      "detail_rate_limited_total",
			Help:      "Number of detail fetches skipped by the per-session rate limit",
		}),
	}

	prometheus.MustRegister(m.UpstreamRequests, m.DetailCacheHits, m.RateLimited)
	return m
}

// NewUnregistered builds metrics without touching the default registry.
// Used in tests, where New would collide across cases.
func NewUnregistered() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_requests_total",
		}, []string{"provider", "status"}),
		DetailCacheHits: prometheus.NewCounter(prometheus.CounterOpts{Name: "detail_cache_hits_total"}),
		RateLimited:     prometheus.NewCounter(prometheus.CounterOpts{Name: "detail_rate_limited_total"}),
	}
}

// Observe records one upstream call outcome.
func (m *Metrics) Observe(provider string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.UpstreamRequests.WithLabelValues(provider, status).Inc()
}
