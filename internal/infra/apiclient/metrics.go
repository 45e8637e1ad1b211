package apiclient

import (
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics records per-request counters and latencies.
// A nil *metrics is valid and records nothing.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_client_requests_total",
				Help: "Total number of API requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todo_client_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// routeLabel collapses numeric ids so /tasks/12 and /tasks/13 share a series.
func routeLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return numericSegment.ReplaceAllString(path, "/{id}$1")
}

func (m *metrics) observe(method, path, code string, d time.Duration) {
	if m == nil {
		return
	}
	route := routeLabel(path)
	m.requests.WithLabelValues(method, route, code).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}
