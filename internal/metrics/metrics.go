// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wardrobe"

// Registry collects every wardrobe metric plus Go runtime and process stats.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the local API.",
	}, []string{"method", "route", "status"})

	HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of local API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// WeatherFetches counts forecast lookups by outcome: fresh, cached, stale, failed.
	WeatherFetches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weather_fetches_total",
		Help:      "Forecast lookups by outcome.",
	}, []string{"result"})

	TrashPurged = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trash_purged_total",
		Help:      "Trash entries permanently deleted.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
