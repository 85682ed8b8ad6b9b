package biometric

import (
	"context"
	"math"

	"facegate.io/infrastructure/biometric/types"
	"golang.org/x/sync/errgroup"
)

// Metric names one of the six texture/artifact signals.
type Metric int

const (
	MetricLaplacianVariance Metric = iota
	MetricMoire
	MetricBrightnessUniformity
	MetricColorSaturation
	MetricReflection
	MetricFrequencyArtifacts
	metricCount
)

type extractorFunc func(buf *ImageBuffer, cfg FeatureConfig) float64

var extractors = [metricCount]extractorFunc{
	MetricLaplacianVariance:    laplacianVariance,
	MetricMoire:                moireScore,
	MetricBrightnessUniformity: brightnessUniformity,
	MetricColorSaturation:      colorSaturation,
	MetricReflection:           reflectionRatio,
	MetricFrequencyArtifacts:   frequencyArtifacts,
}

var metricNames = [metricCount]string{
	MetricLaplacianVariance:    "laplacian_variance",
	MetricMoire:                "moire_score",
	MetricBrightnessUniformity: "brightness_uniformity",
	MetricColorSaturation:      "color_saturation",
	MetricReflection:           "reflection_ratio",
	MetricFrequencyArtifacts:   "frequency_artifacts",
}

func AllMetrics() []Metric {
	metrics := make([]Metric, 0, metricCount)
	for m := Metric(0); m < metricCount; m++ {
		metrics = append(metrics, m)
	}
	return metrics
}

func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return "unknown"
	}
	return metricNames[m]
}

// Extract computes a single metric. Only a buffer whose sample length does
// not match its dimensions is rejected; small images yield 0.
func (m Metric) Extract(buf *ImageBuffer, cfg FeatureConfig) (float64, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}
	return m.extract(buf, cfg), nil
}

func (m Metric) extract(buf *ImageBuffer, cfg FeatureConfig) float64 {
	return extractors[m](buf, cfg)
}

// ExtractFeatures runs every metric concurrently over the same buffer.
func ExtractFeatures(ctx context.Context, buf *ImageBuffer, cfg FeatureConfig) (types.FeatureSet, error) {
	if err := buf.Validate(); err != nil {
		return types.FeatureSet{}, err
	}

	var values [metricCount]float64
	g, gctx := errgroup.WithContext(ctx)
	for _, m := range AllMetrics() {
		m := m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values[m] = m.extract(buf, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.FeatureSet{}, err
	}

	return types.FeatureSet{
		LaplacianVariance:    values[MetricLaplacianVariance],
		MoireScore:           values[MetricMoire],
		BrightnessUniformity: values[MetricBrightnessUniformity],
		ColorSaturation:      values[MetricColorSaturation],
		ReflectionRatio:      values[MetricReflection],
		FrequencyArtifacts:   values[MetricFrequencyArtifacts],
	}, nil
}

// grayPlane converts the buffer to a row-major greyscale plane.
func grayPlane(buf *ImageBuffer) []float64 {
	plane := make([]float64, buf.PixelCount())
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			plane[y*buf.Width+x] = buf.gray(x, y)
		}
	}
	return plane
}

// laplacianResponses applies [[0,-1,0],[-1,4,-1],[0,-1,0]] to every interior
// pixel and returns the signed responses in row-major order.
func laplacianResponses(buf *ImageBuffer) []float64 {
	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return nil
	}
	plane := grayPlane(buf)
	out := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		row := y * w
		for x := 1; x < w-1; x++ {
			c := row + x
			out = append(out, 4*plane[c]-plane[c-w]-plane[c+w]-plane[c-1]-plane[c+1])
		}
	}
	return out
}

func laplacianVariance(buf *ImageBuffer, _ FeatureConfig) float64 {
	responses := laplacianResponses(buf)
	if len(responses) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range responses {
		sum += math.Abs(r)
	}
	return sum / float64(len(responses))
}

// moireScore counts grid points that look the same as the pixel cfg.MoireOffset to
// the right and below, which is what periodic interference produces.
func moireScore(buf *ImageBuffer, cfg FeatureConfig) float64 {
	off := cfg.MoireOffset
	hits, points := 0, 0
	for y := off; y < buf.Height-off; y += cfg.MoireStep {
		for x := off; x < buf.Width-off; x += cfg.MoireStep {
			points++
			if buf.rgbDelta(x, y, x+off, y) < cfg.MoireThreshold &&
				buf.rgbDelta(x, y, x, y+off) < cfg.MoireThreshold {
				hits++
			}
		}
	}
	if points == 0 {
		return 0
	}
	return 100 * float64(hits) / float64(points)
}

// brightnessUniformity is the coefficient of variation of sampled brightness,
// in percent.
func brightnessUniformity(buf *ImageBuffer, cfg FeatureConfig) float64 {
	step := cfg.BrightnessSampleEvery * channels
	var values []float64
	for i := 0; i+2 < len(buf.Samples); i += step {
		s := buf.Samples
		values = append(values, (float64(s[i])+float64(s[i+1])+float64(s[i+2]))/3)
	}
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return 100 * math.Sqrt(variance) / mean
}

func colorSaturation(buf *ImageBuffer, cfg FeatureConfig) float64 {
	step := cfg.SaturationSampleEvery * channels
	total, samples := 0.0, 0
	for i := 0; i+2 < len(buf.Samples); i += step {
		total += hslSaturation(buf.Samples[i], buf.Samples[i+1], buf.Samples[i+2])
		samples++
	}
	if samples == 0 {
		return 0
	}
	return 100 * total / float64(samples)
}

func hslSaturation(r, g, b byte) float64 {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	mx := math.Max(rf, math.Max(gf, bf))
	mn := math.Min(rf, math.Min(gf, bf))
	if mx == mn {
		return 0
	}
	d := mx - mn
	if (mx+mn)/2 > 0.5 {
		return d / (2 - mx - mn)
	}
	return d / (mx + mn)
}

func reflectionRatio(buf *ImageBuffer, cfg FeatureConfig) float64 {
	pixels := buf.PixelCount()
	if pixels == 0 {
		return 0
	}
	level := byte(cfg.ReflectionLevel)
	bright := 0
	for i := 0; i < len(buf.Samples); i += channels {
		if buf.Samples[i] > level && buf.Samples[i+1] > level && buf.Samples[i+2] > level {
			bright++
		}
	}
	return 100 * float64(bright) / float64(pixels)
}

// frequencyArtifacts looks for hard horizontal jumps on a coarse grid, the
// signature of compression block edges.
func frequencyArtifacts(buf *ImageBuffer, cfg FeatureConfig) float64 {
	stride := cfg.FrequencyStride
	artifacts, checks := 0, 0
	for y := 0; y < buf.Height; y += stride {
		for x := 0; x+1 < buf.Width; x += stride {
			checks++
			if buf.rgbDelta(x, y, x+1, y) > cfg.FrequencyThreshold {
				artifacts++
			}
		}
	}
	if checks == 0 {
		return 0
	}
	return 100 * float64(artifacts) / float64(checks)
}
