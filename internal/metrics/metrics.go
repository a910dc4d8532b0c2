package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_errors_total",
			Help: "Total number of logged errors and typed warnings.",
		},
		[]string{"type", "level"},
	)
	RequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_api_requests_total",
			Help: "Total number of handled API requests.",
		},
		[]string{"method", "route", "code"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	JobsMutationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_jobs_mutations_total",
			Help: "Total number of stored job mutations.",
		},
		[]string{"action"},
	)
	RegisteredUsersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_users_registered_total",
			Help: "Total number of registered users.",
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RequestsCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(JobsMutationsCounter)
		prometheus.MustRegister(RegisteredUsersCounter)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
