package biometric

import (
	"errors"
	"fmt"
	"math"
)

// DefaultThreshold is the score cut-off applied when a caller does not pick one.
const DefaultThreshold = 50.0

// FeatureConfig holds the sampling steps and pixel thresholds used by the
// extractors.
type FeatureConfig struct {
	MoireStep             int `mapstructure:"moire_step" yaml:"moire_step"`
	MoireOffset           int `mapstructure:"moire_offset" yaml:"moire_offset"`
	MoireThreshold        int `mapstructure:"moire_threshold" yaml:"moire_threshold"`
	BrightnessSampleEvery int `mapstructure:"brightness_sample_every" yaml:"brightness_sample_every"`
	SaturationSampleEvery int `mapstructure:"saturation_sample_every" yaml:"saturation_sample_every"`
	ReflectionLevel       int `mapstructure:"reflection_level" yaml:"reflection_level"`
	FrequencyStride       int `mapstructure:"frequency_stride" yaml:"frequency_stride"`
	FrequencyThreshold    int `mapstructure:"frequency_threshold" yaml:"frequency_threshold"`
}

// ScoringConfig holds the fusion weights, the normalisation constants and the
// spoof-type cascade limits.
type ScoringConfig struct {
	LaplacianWeight  float64 `mapstructure:"laplacian_weight" yaml:"laplacian_weight"`
	MoireWeight      float64 `mapstructure:"moire_weight" yaml:"moire_weight"`
	BrightnessWeight float64 `mapstructure:"brightness_weight" yaml:"brightness_weight"`
	SaturationWeight float64 `mapstructure:"saturation_weight" yaml:"saturation_weight"`
	ReflectionWeight float64 `mapstructure:"reflection_weight" yaml:"reflection_weight"`

	LaplacianReference float64 `mapstructure:"laplacian_reference" yaml:"laplacian_reference"`
	MoireMultiplier    float64 `mapstructure:"moire_multiplier" yaml:"moire_multiplier"`
	BrightnessGain     float64 `mapstructure:"brightness_gain" yaml:"brightness_gain"`
	SaturationIdeal    float64 `mapstructure:"saturation_ideal" yaml:"saturation_ideal"`
	ReflectionGain     float64 `mapstructure:"reflection_gain" yaml:"reflection_gain"`

	MoireLimit      float64 `mapstructure:"moire_limit" yaml:"moire_limit"`
	ReflectionLimit float64 `mapstructure:"reflection_limit" yaml:"reflection_limit"`
	LaplacianFloor  float64 `mapstructure:"laplacian_floor" yaml:"laplacian_floor"`
	FrequencyLimit  float64 `mapstructure:"frequency_limit" yaml:"frequency_limit"`
	BrightnessFloor float64 `mapstructure:"brightness_floor" yaml:"brightness_floor"`

	DefaultThreshold   float64 `mapstructure:"default_threshold" yaml:"default_threshold"`
	ConfidenceMidpoint float64 `mapstructure:"confidence_midpoint" yaml:"confidence_midpoint"`
}

// TemporalConfig controls frame normalisation and the static-capture decision.
type TemporalConfig struct {
	MaxFrames         int     `mapstructure:"max_frames" yaml:"max_frames"`
	MinFrames         int     `mapstructure:"min_frames" yaml:"min_frames"`
	MaxRequestFrames  int     `mapstructure:"max_request_frames" yaml:"max_request_frames"`
	Width             int     `mapstructure:"width" yaml:"width"`
	Height            int     `mapstructure:"height" yaml:"height"`
	CorrelationStride int     `mapstructure:"correlation_stride" yaml:"correlation_stride"`
	Epsilon           float64 `mapstructure:"epsilon" yaml:"epsilon"`
	StaticThreshold   float64 `mapstructure:"static_threshold" yaml:"static_threshold"`
}

type EngineConfig struct {
	Features FeatureConfig  `mapstructure:"features" yaml:"features"`
	Scoring  ScoringConfig  `mapstructure:"scoring" yaml:"scoring"`
	Temporal TemporalConfig `mapstructure:"temporal" yaml:"temporal"`
}

func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		MoireStep:             2,
		MoireOffset:           4,
		MoireThreshold:        25,
		BrightnessSampleEvery: 100,
		SaturationSampleEvery: 50,
		ReflectionLevel:       240,
		FrequencyStride:       8,
		FrequencyThreshold:    150,
	}
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		LaplacianWeight:  0.40,
		MoireWeight:      0.20,
		BrightnessWeight: 0.15,
		SaturationWeight: 0.15,
		ReflectionWeight: 0.10,

		LaplacianReference: 40,
		MoireMultiplier:    3,
		BrightnessGain:     2,
		SaturationIdeal:    55,
		ReflectionGain:     2,

		MoireLimit:      25,
		ReflectionLimit: 20,
		LaplacianFloor:  8,
		FrequencyLimit:  30,
		BrightnessFloor: 5,

		DefaultThreshold:   DefaultThreshold,
		ConfidenceMidpoint: 50,
	}
}

func DefaultTemporalConfig() TemporalConfig {
	return TemporalConfig{
		MaxFrames:         8,
		MinFrames:         2,
		MaxRequestFrames:  32,
		Width:             160,
		Height:            120,
		CorrelationStride: 4,
		Epsilon:           1e-9,
		StaticThreshold:   0.96,
	}
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Features: DefaultFeatureConfig(),
		Scoring:  DefaultScoringConfig(),
		Temporal: DefaultTemporalConfig(),
	}
}

func (c FeatureConfig) Validate() error {
	if c.MoireStep <= 0 || c.MoireOffset <= 0 {
		return fmt.Errorf("moire step and offset must be positive, got %d and %d", c.MoireStep, c.MoireOffset)
	}
	if c.BrightnessSampleEvery <= 0 || c.SaturationSampleEvery <= 0 {
		return errors.New("brightness and saturation sample intervals must be positive")
	}
	if c.FrequencyStride <= 0 {
		return fmt.Errorf("frequency stride must be positive, got %d", c.FrequencyStride)
	}
	if c.ReflectionLevel < 0 || c.ReflectionLevel > 255 {
		return fmt.Errorf("reflection level must be between 0 and 255, got %d", c.ReflectionLevel)
	}
	return nil
}

func (c ScoringConfig) Validate() error {
	weights := []float64{c.LaplacianWeight, c.MoireWeight, c.BrightnessWeight, c.SaturationWeight, c.ReflectionWeight}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("fusion weights must be non-negative, got %.3f", w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("fusion weights must sum to 1, got %.6f", sum)
	}
	if c.LaplacianReference <= 0 || c.SaturationIdeal <= 0 {
		return errors.New("laplacian reference and saturation ideal must be positive")
	}
	if c.ConfidenceMidpoint <= 0 || c.ConfidenceMidpoint >= 100 {
		return fmt.Errorf("confidence midpoint must be inside (0,100), got %.2f", c.ConfidenceMidpoint)
	}
	if c.DefaultThreshold < 0 || c.DefaultThreshold > 100 {
		return fmt.Errorf("default threshold must be between 0 and 100, got %.2f", c.DefaultThreshold)
	}
	return nil
}

func (c TemporalConfig) Validate() error {
	if c.MinFrames < 2 {
		return fmt.Errorf("min frames must be at least 2, got %d", c.MinFrames)
	}
	if c.MaxFrames < c.MinFrames {
		return fmt.Errorf("max frames (%d) must be >= min frames (%d)", c.MaxFrames, c.MinFrames)
	}
	if c.MaxRequestFrames < c.MinFrames || c.MaxRequestFrames > 32 {
		return fmt.Errorf("max request frames must be between %d and 32, got %d", c.MinFrames, c.MaxRequestFrames)
	}
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("working resolution must be at least 3x3, got %dx%d", c.Width, c.Height)
	}
	if c.CorrelationStride <= 0 {
		return fmt.Errorf("correlation stride must be positive, got %d", c.CorrelationStride)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	return nil
}

func (c EngineConfig) Validate() error {
	if err := c.Features.Validate(); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Temporal.Validate(); err != nil {
		return fmt.Errorf("temporal: %w", err)
	}
	return nil
}
