package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Solves counts completed solves by outcome ("ok" or "invalid_input").
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solves_total", Help: "Completed solves by outcome."},
		[]string{"outcome"},
	)
	// SolveDuration tracks wall-clock solve latency in seconds.
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "solve_duration_seconds", Help: "Solve duration in seconds.", Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60}},
	)
	// Refills counts refill stops appended across all solves.
	Refills = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "refill_stops_total", Help: "Refill stops appended to routes."},
	)
	// UnmetQuantity observes leftover demand quantity per solve.
	UnmetQuantity = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "solve_unmet_quantity", Help: "Unmet demand quantity at end of solve.", Buckets: []float64{0, 1, 10, 100, 1000, 10000}},
	)
	// ProviderFallbacks counts remote distance lookups that fell back to
	// the local great-circle approximation.
	ProviderFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "distance_provider_fallbacks_total", Help: "Remote distance lookups served by the local fallback."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(Refills)
		Registry.MustRegister(UnmetQuantity)
		Registry.MustRegister(ProviderFallbacks)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
