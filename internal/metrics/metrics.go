package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bank_rules"

// RuleLockOutcomes counts how rule reads resolved the edit lease.
// outcome is one of acquired, held, locked, lost.
var RuleLockOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "rule",
	Name:      "lock_outcomes_total",
	Help:      "Rule reads by edit lease outcome.",
}, []string{"outcome"})

// RuleWrites counts rule creates and updates by result.
var RuleWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "rule",
	Name:      "writes_total",
	Help:      "Rule create and update attempts by operation and result.",
}, []string{"operation", "result"})

// RuleListCacheLookups counts rule overview cache hits and misses.
var RuleListCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "rule",
	Name:      "list_cache_lookups_total",
	Help:      "Rule overview cache lookups by result.",
}, []string{"result"})

// ManualPostings counts manual transaction postings by result.
var ManualPostings = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "posting",
	Name:      "manual_total",
	Help:      "Manual transaction postings by result.",
}, []string{"result"})

// NotificationFailures counts posting notifications that could not be sent.
var NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "posting",
	Name:      "notification_failures_total",
	Help:      "Posting notifications that failed to send.",
})

// HTTPRequestDuration tracks request latency by route and status.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by method, route and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Middleware records HTTPRequestDuration. Unmatched routes are grouped under "unmatched".
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
