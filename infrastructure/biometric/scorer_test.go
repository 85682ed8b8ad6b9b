package biometric

import (
	"math"
	"testing"

	"facegate.io/infrastructure/biometric/types"
	"github.com/stretchr/testify/assert"
)

func TestScoreFusion(t *testing.T) {
	scorer := NewSpoofScorer(DefaultScoringConfig())
	features := types.FeatureSet{
		LaplacianVariance:    20, // 50 * 0.40 = 20
		MoireScore:           10, // 70 * 0.20 = 14
		BrightnessUniformity: 30, // 60 * 0.15 = 9
		ColorSaturation:      55, // 100 * 0.15 = 15
		ReflectionRatio:      5,  // 90 * 0.10 = 9
		FrequencyArtifacts:   0,
	}

	result := scorer.Score(features, DefaultThreshold)

	assert.InDelta(t, 67.0, result.Score, 1e-9)
	assert.True(t, result.IsReal)
	assert.Equal(t, DefaultThreshold, result.Threshold)
	assert.InDelta(t, 0.34, result.Confidence, 1e-9)
	assert.Equal(t, types.RealFace, result.SpoofType)
	assert.Equal(t, features, result.Details)
}

func TestScoreThresholdIsStrict(t *testing.T) {
	scorer := NewSpoofScorer(DefaultScoringConfig())
	features := types.FeatureSet{LaplacianVariance: 20, MoireScore: 10, BrightnessUniformity: 30, ColorSaturation: 55, ReflectionRatio: 5}

	atThreshold := scorer.Score(features, 67)
	assert.False(t, atThreshold.IsReal)

	lenient := scorer.Score(features, 30)
	strict := scorer.Score(features, 90)
	assert.True(t, lenient.IsReal)
	assert.False(t, strict.IsReal)
	assert.Equal(t, lenient.Confidence, strict.Confidence, "confidence must not depend on the threshold")
}

func TestScoreIsClamped(t *testing.T) {
	scorer := NewSpoofScorer(DefaultScoringConfig())
	tests := []struct {
		name     string
		features types.FeatureSet
	}{
		{name: "zero", features: types.FeatureSet{}},
		{name: "huge", features: types.FeatureSet{LaplacianVariance: 1e12, MoireScore: 1e12, BrightnessUniformity: 1e12, ColorSaturation: 1e12, ReflectionRatio: 1e12, FrequencyArtifacts: 1e12}},
		{name: "infinite texture", features: types.FeatureSet{LaplacianVariance: math.Inf(1), BrightnessUniformity: math.Inf(1), ColorSaturation: 55}},
		{name: "negative", features: types.FeatureSet{LaplacianVariance: -500, MoireScore: -500, BrightnessUniformity: -500, ColorSaturation: -500, ReflectionRatio: -500}},
		{name: "nan", features: types.FeatureSet{LaplacianVariance: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(tt.features, DefaultThreshold)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 100.0)
		})
	}
}

func TestScoreOnPathologicalImages(t *testing.T) {
	scorer := NewSpoofScorer(DefaultScoringConfig())
	for name, buf := range map[string]*ImageBuffer{
		"black": uniformImage(64, 64, 0, 0, 0),
		"white": uniformImage(64, 64, 255, 255, 255),
	} {
		t.Run(name, func(t *testing.T) {
			result := scorer.Score(extract(t, buf), DefaultThreshold)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 100.0)
			assert.NotEqual(t, types.RealFace, result.SpoofType)
		})
	}
}

func TestClassifyCascadeOrder(t *testing.T) {
	scorer := NewSpoofScorer(DefaultScoringConfig())
	live := types.FeatureSet{LaplacianVariance: 30, MoireScore: 5, BrightnessUniformity: 20, ColorSaturation: 50, ReflectionRatio: 2, FrequencyArtifacts: 5}

	tests := []struct {
		name   string
		mutate func(f *types.FeatureSet)
		want   types.SpoofType
	}{
		{name: "live", mutate: func(f *types.FeatureSet) {}, want: types.RealFace},
		{name: "moire beats everything", mutate: func(f *types.FeatureSet) {
			f.MoireScore, f.ReflectionRatio, f.LaplacianVariance, f.FrequencyArtifacts, f.BrightnessUniformity = 26, 50, 1, 90, 0
		}, want: types.PrintedPhotoOrScreen},
		{name: "moire at limit is not a hit", mutate: func(f *types.FeatureSet) { f.MoireScore = 25 }, want: types.RealFace},
		{name: "glare", mutate: func(f *types.FeatureSet) { f.ReflectionRatio, f.LaplacianVariance = 21, 1 }, want: types.ScreenDisplay},
		{name: "low texture", mutate: func(f *types.FeatureSet) { f.LaplacianVariance, f.FrequencyArtifacts = 7.9, 90 }, want: types.CompressedOrVideo},
		{name: "block edges", mutate: func(f *types.FeatureSet) { f.FrequencyArtifacts, f.BrightnessUniformity = 31, 1 }, want: types.EncodingArtifacts},
		{name: "flat lighting", mutate: func(f *types.FeatureSet) { f.BrightnessUniformity = 4.9 }, want: types.VideoReplay},
		{name: "nan", mutate: func(f *types.FeatureSet) { f.MoireScore = math.NaN() }, want: types.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := live
			tt.mutate(&f)
			assert.Equal(t, tt.want, scorer.Classify(f))
		})
	}
}

func TestLabelCanDisagreeWithScore(t *testing.T) {
	scorer := NewSpoofScorer(DefaultScoringConfig())
	// strong texture everywhere except a laplacian just under the floor
	features := types.FeatureSet{LaplacianVariance: 7.5, MoireScore: 0, BrightnessUniformity: 60, ColorSaturation: 55, ReflectionRatio: 0}

	result := scorer.Score(features, 50)
	assert.True(t, result.IsReal)
	assert.Equal(t, types.CompressedOrVideo, result.SpoofType)
}
