package liveness_usecase

import (
	"context"
	"fmt"
	"time"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/controller/dto"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
	"facegate.io/infrastructure/metrics"
)

// resolveStaticThreshold picks the explicit override, then the calibrated
// value when asked for, then the configured default.
func resolveStaticThreshold(ctx context.Context, e biometric.LivenessEngine, override *float64, useCalibrated bool) (float64, error) {
	if override != nil {
		return *override, nil
	}
	if !useCalibrated {
		return e.Config().Temporal.StaticThreshold, nil
	}
	calibrated, err := thresholdStore().Load(ctx)
	if err != nil {
		return 0, backendError(err)
	}
	if calibrated == nil {
		return 0, apperrors.ErrNoCalibration
	}
	return *calibrated, nil
}

func AnalyzeFramesUseCase(ctx context.Context, payload *dto.TemporalRequest, requestID string) (*dto.TemporalResponse, error) {
	e, err := currentEngine()
	if err != nil {
		return nil, err
	}
	staticThreshold, err := resolveStaticThreshold(ctx, e, payload.StaticThreshold, payload.UseCalibratedThreshold)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var result types.TemporalResult
	err = runBounded(ctx, func(ctx context.Context) error {
		frames := decodeFrames(payload.Frames, e.Config().Temporal.MaxFrames)
		if err := ctx.Err(); err != nil {
			return err
		}
		result = e.AnalyzeFrames(frames, staticThreshold)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("temporal analysis: %w", err)
	}
	metrics.ObserveAnalysis("temporal", started)
	if !result.InsufficientFrames {
		metrics.RecordVerdict("temporal", !result.IsStatic)
	}

	response := temporalResponse(result, staticThreshold, requestID, elapsedMS(started))
	logger.Info("frame burst analysed", logger.LoggerOptions{
		Key:  "requestID",
		Data: requestID,
	}, logger.LoggerOptions{
		Key:  "averageCorrelation",
		Data: result.AverageCorrelation,
	}, logger.LoggerOptions{
		Key:  "framesUsed",
		Data: result.FramesUsed,
	})
	return &response, nil
}

func temporalResponse(result types.TemporalResult, staticThreshold float64, requestID string, elapsed int64) dto.TemporalResponse {
	pairs := result.PerPairCorrelation
	if pairs == nil {
		pairs = []float64{}
	}
	return dto.TemporalResponse{
		RequestID:           requestID,
		TemporalScore:       result.AverageCorrelation,
		PerPairCorrelations: pairs,
		IsStatic:            result.IsStatic,
		StaticThreshold:     staticThreshold,
		FramesUsed:          result.FramesUsed,
		InsufficientFrames:  result.InsufficientFrames,
		ElapsedMS:           elapsed,
	}
}
