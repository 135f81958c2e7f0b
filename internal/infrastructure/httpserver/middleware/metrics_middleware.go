package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware holds the Prometheus metrics
type MetricsMiddleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetricsMiddleware creates a new metrics middleware instance
func NewMetricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

// CollectHTTPMetrics counts and times every request, labelled by the
// registered route pattern so /books/:id stays one series.
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// Unmatched requests have no route pattern; fall back to
			// the raw path so 404s still show up.
			endpoint := c.Path()
			if endpoint == "" {
				endpoint = c.Request().URL.Path
			}
			method := c.Request().Method

			m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Response().Status)).Inc()
			m.requestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
