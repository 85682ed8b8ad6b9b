package biometric

import (
	"context"
	"fmt"

	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
)

type LivenessEngine interface {
	Config() EngineConfig
	AnalyzeImage(ctx context.Context, buf *ImageBuffer, threshold float64) (*types.SpoofResult, error)
	AnalyzeFrames(frames []*ImageBuffer, staticThreshold float64) types.TemporalResult
	AnalyzeSession(ctx context.Context, primary *ImageBuffer, frames []*ImageBuffer, threshold float64, staticThreshold float64) (*types.SessionResult, error)
	Calibrate(ctx context.Context, samples []CalibrationSample) (*types.CalibrationResult, error)
}

var LivenessService LivenessEngine

// InitialiseLivenessService builds the process-wide engine from cfg.
func InitialiseLivenessService(cfg EngineConfig) error {
	engine, err := NewEngine(cfg)
	if err != nil {
		return err
	}
	LivenessService = engine
	logger.Info("liveness engine initialised", logger.LoggerOptions{
		Key:  "default_threshold",
		Data: cfg.Scoring.DefaultThreshold,
	}, logger.LoggerOptions{
		Key:  "static_threshold",
		Data: cfg.Temporal.StaticThreshold,
	})
	return nil
}

// Engine wires the extractors, scorer, temporal analyzer and calibration
// engine to one configuration. It holds no per-request state.
type Engine struct {
	config     EngineConfig
	Scorer     *SpoofScorer
	Temporal   *TemporalAnalyzer
	Calibrator *CalibrationEngine
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid liveness engine config: %w", err)
	}
	temporal := NewTemporalAnalyzer(cfg.Temporal)
	return &Engine{
		config:     cfg,
		Scorer:     NewSpoofScorer(cfg.Scoring),
		Temporal:   temporal,
		Calibrator: NewCalibrationEngine(temporal),
	}, nil
}

func (e *Engine) Config() EngineConfig {
	return e.config
}

func (e *Engine) AnalyzeImage(ctx context.Context, buf *ImageBuffer, threshold float64) (*types.SpoofResult, error) {
	features, err := ExtractFeatures(ctx, buf, e.config.Features)
	if err != nil {
		return nil, err
	}
	result := e.Scorer.Score(features, threshold)
	return &result, nil
}

func (e *Engine) AnalyzeFrames(frames []*ImageBuffer, staticThreshold float64) types.TemporalResult {
	return e.Temporal.AnalyzeWithThreshold(frames, staticThreshold)
}

// AnalyzeSession combines the single-frame verdict with the burst check. The
// temporal side can only veto when it was actually able to assess the burst.
func (e *Engine) AnalyzeSession(ctx context.Context, primary *ImageBuffer, frames []*ImageBuffer, threshold float64, staticThreshold float64) (*types.SessionResult, error) {
	spoof, err := e.AnalyzeImage(ctx, primary, threshold)
	if err != nil {
		return nil, err
	}
	temporal := e.AnalyzeFrames(frames, staticThreshold)

	result := &types.SessionResult{
		IsReal:   spoof.IsReal && !temporal.IsStatic,
		Spoof:    *spoof,
		Temporal: temporal,
	}
	if !spoof.IsReal {
		result.Reasons = append(result.Reasons, fmt.Sprintf("score %.2f is not above threshold %.2f", spoof.Score, spoof.Threshold))
	}
	if spoof.SpoofType != types.RealFace {
		result.Reasons = append(result.Reasons, fmt.Sprintf("features classified as %s", spoof.SpoofType))
	}
	if temporal.IsStatic {
		result.Reasons = append(result.Reasons, fmt.Sprintf("frame burst is static (average correlation %.4f)", temporal.AverageCorrelation))
	}
	if temporal.InsufficientFrames {
		result.Reasons = append(result.Reasons, "temporal check skipped: fewer than 2 usable frames")
	}
	return result, nil
}

func (e *Engine) Calibrate(ctx context.Context, samples []CalibrationSample) (*types.CalibrationResult, error) {
	result, err := e.Calibrator.Calibrate(ctx, samples)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
