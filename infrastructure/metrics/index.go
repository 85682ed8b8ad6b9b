package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "facegate",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "facegate",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "facegate",
		Name:      "analysis_duration_seconds",
		Help:      "Time spent inside the liveness engine per operation.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "facegate",
		Name:      "verdicts_total",
		Help:      "Liveness verdicts, by operation and outcome.",
	}, []string{"operation", "verdict"})
)

func init() {
	Registry.MustRegister(requestsTotal, requestDuration, analysisDuration, verdicts)
}

// ObserveAnalysis records how long an engine operation took.
func ObserveAnalysis(operation string, started time.Time) {
	analysisDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func RecordVerdict(operation string, real bool) {
	verdict := "spoof"
	if real {
		verdict = "real"
	}
	verdicts.WithLabelValues(operation, verdict).Inc()
}

func RequestMetricMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		requestDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(started).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
