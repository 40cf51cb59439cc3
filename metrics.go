package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for fitwise_plan_requests_total.
const (
	planOutcomeSuccess     = "success"
	planOutcomeRemoteError = "remote_error" // non-2xx from the prediction service
	planOutcomeBadResponse = "bad_response" // 2xx with a body we could not decode
	planOutcomeTransport   = "transport"    // no response at all
	planOutcomeBlocked     = "blocked"      // unsafe goal, never sent
	planOutcomeRateLimited = "rate_limited"
)

// metrics holds the Prometheus collectors for the API. Collectors are
// registered on the supplied Registerer so tests can use a private registry.
type metrics struct {
	planRequests *prometheus.CounterVec
	planLatency  prometheus.Histogram
	httpStatus   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		planRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fitwise_plan_requests_total",
			Help: "Plan requests by outcome.",
		}, []string{"outcome"}),
		planLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fitwise_plan_request_duration_seconds",
			Help:    "Latency of calls to the prediction service.",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fitwise_http_responses_total",
			Help: "API responses by route and status code.",
		}, []string{"route", "status_code"}),
	}
	reg.MustRegister(m.planRequests, m.planLatency, m.httpStatus)
	return m
}

func (m *metrics) recordPlanOutcome(outcome string) {
	m.planRequests.WithLabelValues(outcome).Inc()
}

func (m *metrics) recordPlanLatency(d time.Duration) {
	m.planLatency.Observe(d.Seconds())
}

// middleware counts responses per matched route. Unmatched paths are
// grouped under "unmatched" to keep label cardinality bounded.
func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpStatus.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// metricsHandler serves the scrape endpoint for the given gatherer.
func metricsHandler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
