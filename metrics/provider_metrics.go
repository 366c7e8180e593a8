package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream provider call instrumentation, labeled by provider name and outcome.

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_provider_calls_total",
			Help: "Total calls to upstream providers",
		},
		[]string{"provider", "status"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "widget_provider_call_duration_seconds",
			Help:    "Upstream provider call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "status"},
	)
)

// RecordProviderCall records one upstream call outcome with its duration
func RecordProviderCall(provider string, err error, seconds float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ProviderCallsTotal.WithLabelValues(provider, status).Inc()
	ProviderCallDuration.WithLabelValues(provider, status).Observe(seconds)
}
