package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of storefront API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Storefront API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
)

// observeRequest records one API call. The status label is "ok" for
// successes and the mapped HTTP status otherwise; transport failures map to
// 500 through the error taxonomy.
func observeRequest(endpoint, method string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = strconv.Itoa(apperrors.HTTPStatus(err))
	}
	apiRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	apiRequestDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}
