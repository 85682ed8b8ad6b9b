package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordVerdict(t *testing.T) {
	before := testutil.ToFloat64(verdicts.WithLabelValues("unit", "real"))
	RecordVerdict("unit", true)
	RecordVerdict("unit", false)
	assert.Equal(t, before+1, testutil.ToFloat64(verdicts.WithLabelValues("unit", "real")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(verdicts.WithLabelValues("unit", "spoof")), 1.0)
}

func TestRequestMetricMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestMetricMiddleware())
	router.GET("/ping", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	router.GET("/metrics", Handler())

	ObserveAnalysis("unit", time.Now())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `facegate_http_requests_total{method="GET",route="/ping",status="200"}`)
	assert.Contains(t, body, "facegate_analysis_duration_seconds")
}
