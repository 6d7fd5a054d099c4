package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_server_requests_total",
			Help: "Number of HTTP requests served, by method and status code",
		},
		[]string{"method", "code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "score_server_request_duration_seconds",
			Help:    "Time to serve a request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	bytesServed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "score_server_response_bytes_total",
			Help: "Bytes written in response bodies",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(bytesServed)
}

// ObserveRequest records one served request
func ObserveRequest(method string, code int, duration time.Duration, bytes int64) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	requestDuration.WithLabelValues(method).Observe(duration.Seconds())
	if bytes > 0 {
		bytesServed.Add(float64(bytes))
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
