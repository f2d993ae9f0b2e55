// Package metrics exposes Prometheus collectors for the map service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled HTTP requests.
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "centermap_http_requests_total",
		Help: "Total HTTP requests handled.",
	})

	// UploadsTotal counts admin upload attempts, accepted or not.
	UploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "centermap_uploads_total",
		Help: "Total admin upload attempts.",
	})

	// UploadFailures counts rejected admin uploads.
	UploadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "centermap_upload_failures_total",
		Help: "Admin uploads rejected by parse or validation.",
	})

	// ActiveCenters tracks the size of the active batch.
	ActiveCenters = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "centermap_active_centers",
		Help: "Centers in the active batch.",
	})

	// VisibleCenters tracks the size of the last derived projection.
	VisibleCenters = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "centermap_visible_centers",
		Help: "Centers visible after filtering.",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, UploadsTotal, UploadFailures, ActiveCenters, VisibleCenters)
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// CountRequests is middleware incrementing RequestsTotal.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RequestsTotal.Inc()
		next.ServeHTTP(w, r)
	})
}
