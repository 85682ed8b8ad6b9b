package liveness_usecase

import (
	"context"
	"time"

	"facegate.io/application/controller/dto"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
	"facegate.io/infrastructure/metrics"
)

func AnalyzeSessionUseCase(ctx context.Context, payload *dto.SessionRequest, requestID string) (*dto.SessionResponse, error) {
	e, err := currentEngine()
	if err != nil {
		return nil, err
	}
	threshold := e.Config().Scoring.DefaultThreshold
	if payload.Threshold != nil {
		threshold = *payload.Threshold
	}
	staticThreshold, err := resolveStaticThreshold(ctx, e, payload.StaticThreshold, payload.UseCalibratedThreshold)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var result *types.SessionResult
	err = runBounded(ctx, func(ctx context.Context) error {
		primary, err := decodeImage(payload.Image)
		if err != nil {
			return err
		}
		frames := decodeFrames(payload.Frames, e.Config().Temporal.MaxFrames)
		result, err = e.AnalyzeSession(ctx, primary, frames, threshold, staticThreshold)
		return err
	})
	if err != nil {
		return nil, err
	}
	elapsed := elapsedMS(started)
	metrics.ObserveAnalysis("session", started)
	metrics.RecordVerdict("session", result.IsReal)

	logger.Info("liveness session analysed", logger.LoggerOptions{
		Key:  "requestID",
		Data: requestID,
	}, logger.LoggerOptions{
		Key:  "isReal",
		Data: result.IsReal,
	}, logger.LoggerOptions{
		Key:  "reasons",
		Data: result.Reasons,
	})
	return &dto.SessionResponse{
		RequestID: requestID,
		IsReal:    result.IsReal,
		Spoof:     spoofResponse(&result.Spoof, requestID, elapsed),
		Temporal:  temporalResponse(result.Temporal, staticThreshold, requestID, elapsed),
		Reasons:   result.Reasons,
		ElapsedMS: elapsed,
	}, nil
}
