package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	storeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "store_requests_total",
			Help:      "Record store round trips by operation and result.",
		},
		[]string{"operation", "result"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "transitions_total",
			Help:      "Booking status transitions by target status.",
		},
		[]string{"target"},
	)

	exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "report_exports_total",
			Help:      "Report artifact exports by format.",
		},
		[]string{"format"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courierdesk",
			Name:      "http_requests_total",
			Help:      "Intent API requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(storeRequests, transitions, exports, httpRequests)
	})
}

// IncStoreRequest counts one record store round trip.
func IncStoreRequest(operation, result string) {
	storeRequests.WithLabelValues(operation, result).Inc()
}

// IncTransition counts one committed status transition.
func IncTransition(target string) {
	transitions.WithLabelValues(target).Inc()
}

// IncExport counts one report export.
func IncExport(format string) {
	exports.WithLabelValues(format).Inc()
}

// IncHTTP counts one intent API request.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
