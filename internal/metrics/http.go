package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RouteLabel returns the matched route template, so /v1/investor-profiles/:id
// is reported once rather than once per profile. Requests that match no route
// share the "unmatched" label.
func RouteLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// HTTPMetricsMiddleware records <namespace>_http_requests_total and
// <namespace>_http_request_duration_seconds labeled by method, route and
// status_code. If the instruments cannot be created the middleware only calls
// the next handler.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	inst, err := newInstruments(meterProvider.Meter(namespace),
		instrumentSpec{
			name:        namespace + "_http_requests_total",
			description: "Total number of HTTP requests",
			unit:        "{request}",
		},
		instrumentSpec{
			name:        namespace + "_http_request_duration_seconds",
			description: "HTTP request duration in seconds",
			unit:        "s",
		},
	)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", RouteLabel(c)),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		ctx := c.Request.Context()
		inst.counter.Add(ctx, 1, attrs)
		inst.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}
