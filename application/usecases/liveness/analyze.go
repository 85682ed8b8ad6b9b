package liveness_usecase

import (
	"context"
	"time"

	"facegate.io/application/controller/dto"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
	"facegate.io/infrastructure/metrics"
)

func AnalyzeImageUseCase(ctx context.Context, payload *dto.AnalyzeImageRequest, requestID string) (*dto.AnalyzeImageResponse, error) {
	e, err := currentEngine()
	if err != nil {
		return nil, err
	}
	threshold := e.Config().Scoring.DefaultThreshold
	if payload.Threshold != nil {
		threshold = *payload.Threshold
	}

	started := time.Now()
	var result *types.SpoofResult
	err = runBounded(ctx, func(ctx context.Context) error {
		buf, err := decodeImage(payload.Image)
		if err != nil {
			return err
		}
		result, err = e.AnalyzeImage(ctx, buf, threshold)
		return err
	})
	if err != nil {
		logger.Warning("single image analysis failed", logger.LoggerOptions{
			Key:  "requestID",
			Data: requestID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
		return nil, err
	}
	metrics.ObserveAnalysis("analyze", started)
	metrics.RecordVerdict("analyze", result.IsReal)

	response := spoofResponse(result, requestID, elapsedMS(started))
	logger.Info("single image analysed", logger.LoggerOptions{
		Key:  "requestID",
		Data: requestID,
	}, logger.LoggerOptions{
		Key:  "score",
		Data: result.Score,
	}, logger.LoggerOptions{
		Key:  "spoofType",
		Data: result.SpoofType,
	})
	return &response, nil
}

func spoofResponse(result *types.SpoofResult, requestID string, elapsed int64) dto.AnalyzeImageResponse {
	return dto.AnalyzeImageResponse{
		RequestID:  requestID,
		Score:      result.Score,
		IsReal:     result.IsReal,
		Threshold:  result.Threshold,
		SpoofType:  result.SpoofType,
		Confidence: result.Confidence,
		Details:    result.Details,
		ElapsedMS:  elapsed,
	}
}
