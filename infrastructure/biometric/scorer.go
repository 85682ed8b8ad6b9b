package biometric

import (
	"math"

	"facegate.io/infrastructure/biometric/types"
)

// SpoofScorer fuses a FeatureSet into a 0-100 liveness score and labels the
// most likely attack type.
type SpoofScorer struct {
	Config ScoringConfig
}

func NewSpoofScorer(cfg ScoringConfig) *SpoofScorer {
	return &SpoofScorer{Config: cfg}
}

// Score applies the weighted fusion. isReal compares against threshold while
// confidence is measured from the fixed midpoint so it does not move with the
// caller's cut-off.
func (s *SpoofScorer) Score(features types.FeatureSet, threshold float64) types.SpoofResult {
	c := s.Config

	laplacian := math.Min(100, features.LaplacianVariance/c.LaplacianReference*100)
	moire := math.Max(0, 100-features.MoireScore*c.MoireMultiplier)
	brightness := math.Min(100, features.BrightnessUniformity*c.BrightnessGain)
	saturation := math.Max(0, 100-math.Abs(features.ColorSaturation-c.SaturationIdeal)/c.SaturationIdeal*100)
	reflection := math.Max(0, 100-features.ReflectionRatio*c.ReflectionGain)

	score := laplacian*c.LaplacianWeight +
		moire*c.MoireWeight +
		brightness*c.BrightnessWeight +
		saturation*c.SaturationWeight +
		reflection*c.ReflectionWeight
	score = clampScore(score)

	return types.SpoofResult{
		Score:      score,
		IsReal:     score > threshold,
		Threshold:  threshold,
		SpoofType:  s.Classify(features),
		Confidence: math.Abs(score-c.ConfidenceMidpoint) / c.ConfidenceMidpoint,
		Details:    features,
	}
}

// Classify walks the raw features from the most to the least conclusive
// signal. It does not look at the fused score, so label and score can disagree.
func (s *SpoofScorer) Classify(features types.FeatureSet) types.SpoofType {
	c := s.Config
	switch {
	case math.IsNaN(features.MoireScore) || math.IsNaN(features.ReflectionRatio) ||
		math.IsNaN(features.LaplacianVariance) || math.IsNaN(features.FrequencyArtifacts) ||
		math.IsNaN(features.BrightnessUniformity):
		return types.Unknown
	case features.MoireScore > c.MoireLimit:
		return types.PrintedPhotoOrScreen
	case features.ReflectionRatio > c.ReflectionLimit:
		return types.ScreenDisplay
	case features.LaplacianVariance < c.LaplacianFloor:
		return types.CompressedOrVideo
	case features.FrequencyArtifacts > c.FrequencyLimit:
		return types.EncodingArtifacts
	case features.BrightnessUniformity < c.BrightnessFloor:
		return types.VideoReplay
	default:
		return types.RealFace
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}
