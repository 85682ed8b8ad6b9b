package liveness_usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"facegate.io/application/controller/dto"
	"facegate.io/infrastructure/database/repository/mongo"
	"facegate.io/infrastructure/logger"
)

// ListCalibrationRunsUseCase returns the most recent runs first.
func ListCalibrationRunsUseCase(ctx context.Context, payload *dto.ListCalibrationRunsRequest) (*dto.CalibrationRunsResponse, error) {
	filter := map[string]interface{}{}
	if payload.Status != nil {
		filter["status"] = *payload.Status
	}
	limit := payload.Limit
	runs, err := runStore().FindMany(ctx, filter, &mongo.FindOptions{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Limit: &limit,
	})
	if err != nil {
		return nil, backendError(err)
	}
	response := &dto.CalibrationRunsResponse{Runs: *runs}
	response.Count = len(response.Runs)
	return response, nil
}

// ClearThresholdUseCase drops the applied calibration so requests fall back
// to the configured static threshold.
func ClearThresholdUseCase(ctx context.Context) (*dto.ThresholdResponse, error) {
	e, err := currentEngine()
	if err != nil {
		return nil, err
	}
	if err := thresholdStore().Clear(ctx); err != nil {
		return nil, backendError(err)
	}
	logger.Info("calibrated static threshold cleared")
	return &dto.ThresholdResponse{
		StaticThreshold: e.Config().Temporal.StaticThreshold,
		ScoreThreshold:  e.Config().Scoring.DefaultThreshold,
	}, nil
}
