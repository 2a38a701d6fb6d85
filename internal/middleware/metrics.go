// Package middleware holds Gin middleware specific to the schedule
// generation surface.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports Prometheus series for HTTP traffic and for the scheduling
// core's own solve attempts. It implements scheduling.MetricsRecorder
// directly, replacing the indirection through a dedicated metrics service
// the teacher used for its dozen unrelated feature domains.
type Metrics struct {
	httpDuration  *prometheus.HistogramVec
	solveDuration *prometheus.HistogramVec
	solveOutcomes *prometheus.CounterVec
}

// NewMetrics registers the scheduling metrics on reg and returns a Metrics
// ready to use as both Gin middleware and a scheduling.MetricsRecorder.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scheduling_http_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the scheduling API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scheduling_solve_duration_seconds",
			Help:    "Duration of one schedule generation attempt, end to end.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}, []string{"outcome"}),
		solveOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_solve_outcomes_total",
			Help: "Count of schedule generation attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.httpDuration, m.solveDuration, m.solveOutcomes)
	return m
}

// ObserveSolve implements scheduling.MetricsRecorder.
func (m *Metrics) ObserveSolve(outcome string, duration time.Duration) {
	m.solveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.solveOutcomes.WithLabelValues(outcome).Inc()
}

// GinMiddleware records HTTP request duration by method, route, and status.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.httpDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
