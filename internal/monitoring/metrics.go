package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of requests in flight",
		},
	)

	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	FollowEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_events_total",
			Help: "Total number of follow and unfollow requests served",
		},
		[]string{"action"},
	)

	PhotoUploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_upload_bytes",
			Help:    "Size of accepted profile photos",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 6),
		},
	)
)

// GetRegistry returns a registry holding the runtime collectors and every
// collector of this package.
func GetRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HttpRequestsTotal,
		HttpRequestDuration,
		ActiveConnections,
		PostsCreated,
		FollowEvents,
		PhotoUploadBytes,
	)

	return registry
}
