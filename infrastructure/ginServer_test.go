package infrastructure

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facegate.io/application/constants"
	"facegate.io/infrastructure/biometric"
	middlewares "facegate.io/infrastructure/middleware"
)

type envelope struct {
	Message      string          `json:"message"`
	Body         json.RawMessage `json:"body"`
	Errors       []string        `json:"errors"`
	RequestID    string          `json:"request_id"`
	ResponseCode uint            `json:"response_code"`
}

func noisyPNG(t *testing.T, seed int64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			v := uint8(40 + rng.Intn(160))
			img.Set(x, y, color.RGBA{R: v, G: v / 2, B: v / 3, A: 255})
		}
	}
	var out bytes.Buffer
	require.NoError(t, png.Encode(&out, img))
	return base64.StdEncoding.EncodeToString(out.Bytes())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("RATE_LIMIT_PER_SECOND", "1000")

	previous := biometric.LivenessService
	require.NoError(t, biometric.InitialiseLivenessService(biometric.DefaultEngineConfig()))
	t.Cleanup(func() { biometric.LivenessService = previous })
	return NewRouter()
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestPingAndNoRoute(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong!", env.Message)
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))

	rec, _ = do(t, router, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeRoute(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/liveness/analyze", map[string]any{"image": noisyPNG(t, 1)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(env.Body, &body))
	for _, key := range []string{"score", "is_real", "spoof_type", "confidence", "details", "threshold"} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, rec.Header().Get(middlewares.RequestIDHeader), env.RequestID)
	assert.Equal(t, 50.0, body["threshold"])
}

func TestAnalyzeRouteErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name         string
		body         any
		code         int
		responseCode uint
	}{
		{name: "malformed json", body: "{", code: http.StatusBadRequest},
		{name: "missing image", body: map[string]any{}, code: http.StatusUnprocessableEntity},
		{name: "threshold out of range", body: map[string]any{"image": "aGVsbG8=", "threshold": 120}, code: http.StatusUnprocessableEntity},
		{name: "not an image", body: map[string]any{"image": "aGVsbG8gd29ybGQ="}, code: http.StatusBadRequest, responseCode: constants.IMAGE_DECODE_FAILED},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodPost, "/api/v1/liveness/analyze", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Equal(t, tt.responseCode, env.ResponseCode)
		})
	}
}

func TestTemporalRoute(t *testing.T) {
	router := newTestRouter(t)
	frame := noisyPNG(t, 2)

	rec, env := do(t, router, http.MethodPost, "/api/v1/liveness/temporal", map[string]any{"frames": []string{frame, frame, frame}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		TemporalScore       float64   `json:"temporal_score"`
		PerPairCorrelations []float64 `json:"per_pair_correlations"`
		IsStatic            bool      `json:"is_static"`
		FramesUsed          int       `json:"frames_used"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.True(t, body.IsStatic)
	assert.Len(t, body.PerPairCorrelations, 2)
	assert.Equal(t, 3, body.FramesUsed)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/liveness/temporal", map[string]any{"frames": []string{frame}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSessionRoute(t *testing.T) {
	router := newTestRouter(t)
	frame := noisyPNG(t, 3)

	rec, env := do(t, router, http.MethodPost, "/api/v1/liveness/session", map[string]any{
		"image":     frame,
		"frames":    []string{frame, frame},
		"threshold": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		IsReal  bool     `json:"is_real"`
		Reasons []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &body))
	assert.False(t, body.IsReal)
	assert.NotEmpty(t, body.Reasons)
}

func TestTuneRouteSync(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/liveness/tune", map[string]any{
		"samples": []map[string]any{
			{"label": "real", "frames": []string{noisyPNG(t, 10), noisyPNG(t, 11)}},
			{"label": "spoof", "frames": []string{noisyPNG(t, 12), noisyPNG(t, 12)}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		RecommendedThreshold *float64 `json:"recommended_threshold"`
		MeanReal             *float64 `json:"mean_real"`
		MeanSpoof            *float64 `json:"mean_spoof"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &body))
	require.NotNil(t, body.RecommendedThreshold)
	assert.InDelta(t, (*body.MeanReal+*body.MeanSpoof)/2, *body.RecommendedThreshold, 1e-9)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/liveness/tune", map[string]any{
		"samples": []map[string]any{{"label": "maybe", "frames": []string{"aGVsbG8="}}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBackendRoutesWithoutBackends(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := do(t, router, http.MethodGet, "/api/v1/liveness/calibrations/01HZZZ", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/liveness/threshold", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/liveness/calibrations?limit=5", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/liveness/threshold", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/liveness/tune", map[string]any{
		"async":   true,
		"samples": []map[string]any{{"label": "real", "frames": []string{noisyPNG(t, 20)}}},
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListCalibrationsRouteValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "limit above max", path: "/api/v1/liveness/calibrations?limit=500"},
		{name: "zero limit", path: "/api/v1/liveness/calibrations?limit=0"},
		{name: "unknown status", path: "/api/v1/liveness/calibrations?status=archived"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			assert.NotEmpty(t, env.Errors)
		})
	}
}
