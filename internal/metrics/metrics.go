package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPSeconds       *prometheus.HistogramVec
	NearbySearches    *prometheus.CounterVec
	RequestTransition *prometheus.CounterVec
	TaskProcessed     *prometheus.CounterVec
	APIErrors         prometheus.Counter
	RequestSeconds    *prometheus.HistogramVec
	ActiveWorkers     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pitstop_http_requests_total",
			Help: "Total number of HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pitstop_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		NearbySearches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pitstop_nearby_searches_total",
			Help: "Total number of nearby garage searches by cache outcome (hit, miss, error, disabled).",
		}, []string{"cache"}),
		RequestTransition: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pitstop_service_requests_total",
			Help: "Total number of service requests entering each status.",
		}, []string{"status"}),
		TaskProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pitstop_geocoding_tasks_processed_total",
			Help: "Total number of processed garage geocoding tasks.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pitstop_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pitstop_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "pitstop_geocoding_active_workers",
			Help: "Current number of active workers processing geocoding tasks.",
		}),
	}
}
