package biometric

import (
	"context"
	"math"
	"sync"
	"testing"

	"facegate.io/infrastructure/biometric/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, buf *ImageBuffer) types.FeatureSet {
	t.Helper()
	features, err := ExtractFeatures(context.Background(), buf, DefaultFeatureConfig())
	require.NoError(t, err)
	return features
}

func TestUniformImageHasNoTexture(t *testing.T) {
	features := extract(t, uniformImage(64, 64, 120, 110, 100))

	assert.Equal(t, 0.0, features.LaplacianVariance)
	assert.Equal(t, 0.0, features.BrightnessUniformity)
	assert.Equal(t, 0.0, features.FrequencyArtifacts)
	assert.Equal(t, 0.0, features.ReflectionRatio)

	scorer := NewSpoofScorer(DefaultScoringConfig())
	assert.NotEqual(t, types.RealFace, scorer.Classify(features))
}

func TestCheckerboardTriggersMoire(t *testing.T) {
	features := extract(t, checkerboard(64, 64, 4))

	assert.InDelta(t, 100.0, features.MoireScore, 1e-9)
	assert.Equal(t, types.PrintedPhotoOrScreen, NewSpoofScorer(DefaultScoringConfig()).Classify(features))
}

func TestLaplacianVarianceKnownValue(t *testing.T) {
	buf := uniformImage(5, 5, 0, 0, 0)
	setPixel(buf, 2, 2, 255, 255, 255)

	got, err := MetricLaplacianVariance.Extract(buf, DefaultFeatureConfig())
	require.NoError(t, err)
	// centre responds with 4*255, its four neighbours with -255 each
	assert.InDelta(t, 2040.0/9.0, got, 1e-9)
}

func TestBrightnessUniformityKnownValue(t *testing.T) {
	buf := uniformImage(100, 2, 0, 0, 0)
	for x := 0; x < 100; x++ {
		setPixel(buf, x, 1, 200, 200, 200)
	}

	got, err := MetricBrightnessUniformity.Extract(buf, DefaultFeatureConfig())
	require.NoError(t, err)
	// samples pixel 0 (black) and pixel 100 (200): mean 100, stddev 100
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestColorSaturation(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b byte
		want    float64
	}{
		{name: "pure red", r: 255, want: 100},
		{name: "grey", r: 128, g: 128, b: 128, want: 0},
		{name: "white", r: 255, g: 255, b: 255, want: 0},
		{name: "dark blue", b: 128, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MetricColorSaturation.Extract(uniformImage(20, 20, tt.r, tt.g, tt.b), DefaultFeatureConfig())
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestReflectionRatio(t *testing.T) {
	buf := uniformImage(10, 10, 30, 30, 30)
	for x := 0; x < 10; x++ {
		setPixel(buf, x, 0, 250, 245, 241)
		setPixel(buf, x, 1, 250, 245, 240) // blue not above 240
	}

	got, err := MetricReflection.Extract(buf, DefaultFeatureConfig())
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-9)

	white, err := MetricReflection.Extract(uniformImage(8, 8, 255, 255, 255), DefaultFeatureConfig())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, white, 1e-9)
}

func TestFrequencyArtifacts(t *testing.T) {
	stripes := uniformImage(32, 16, 0, 0, 0)
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x += 2 {
			setPixel(stripes, x, y, 255, 255, 255)
		}
	}

	got, err := MetricFrequencyArtifacts.Extract(stripes, DefaultFeatureConfig())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got, 1e-9)

	flat, err := MetricFrequencyArtifacts.Extract(uniformImage(32, 16, 90, 90, 90), DefaultFeatureConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.0, flat)
}

func TestMetricsAreNonNegative(t *testing.T) {
	images := map[string]*ImageBuffer{
		"textured":     texturedImage(120, 90, 7, 60),
		"black":        uniformImage(40, 40, 0, 0, 0),
		"white":        uniformImage(40, 40, 255, 255, 255),
		"checkerboard": checkerboard(40, 40, 4),
	}
	for name, buf := range images {
		t.Run(name, func(t *testing.T) {
			f := extract(t, buf)
			for _, v := range []float64{f.LaplacianVariance, f.MoireScore, f.BrightnessUniformity, f.ColorSaturation, f.ReflectionRatio, f.FrequencyArtifacts} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.False(t, math.IsNaN(v))
			}
		})
	}
}

func TestTinyImagesReturnZero(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {1, 1}, {2, 2}, {2, 10}} {
		buf := texturedImage(size[0], size[1], 3, 50)
		for _, m := range []Metric{MetricLaplacianVariance, MetricMoire} {
			got, err := m.Extract(buf, DefaultFeatureConfig())
			require.NoError(t, err)
			assert.Equal(t, 0.0, got, "%s on %dx%d", m, size[0], size[1])
		}
		_, err := ExtractFeatures(context.Background(), buf, DefaultFeatureConfig())
		assert.NoError(t, err)
	}
}

func TestInvalidBufferIsRejected(t *testing.T) {
	bad := &ImageBuffer{Width: 10, Height: 10, Samples: make([]byte, 399)}

	_, err := ExtractFeatures(context.Background(), bad, DefaultFeatureConfig())
	assert.ErrorIs(t, err, ErrInvalidImageBuffer)

	for _, m := range AllMetrics() {
		_, err := m.Extract(bad, DefaultFeatureConfig())
		assert.ErrorIs(t, err, ErrInvalidImageBuffer, m.String())
	}
}

func TestExtractionIsDeterministic(t *testing.T) {
	buf := texturedImage(200, 150, 11, 35)
	before := copyImage(buf)

	first := extract(t, buf)
	second := extract(t, buf)
	assert.Equal(t, first, second)
	assert.Equal(t, before.Samples, buf.Samples, "extraction must not mutate the buffer")

	for _, m := range AllMetrics() {
		a, _ := m.Extract(buf, DefaultFeatureConfig())
		b, _ := m.Extract(buf, DefaultFeatureConfig())
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b), m.String())
	}
}

func TestConcurrentExtractionOnSharedBuffer(t *testing.T) {
	buf := texturedImage(160, 120, 5, 30)
	want := extract(t, buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ExtractFeatures(context.Background(), buf, DefaultFeatureConfig())
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestExtractFeaturesHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractFeatures(ctx, texturedImage(32, 32, 1, 10), DefaultFeatureConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetricNames(t *testing.T) {
	assert.Len(t, AllMetrics(), 6)
	assert.Equal(t, "moire_score", MetricMoire.String())
	assert.Equal(t, "unknown", Metric(42).String())
}
