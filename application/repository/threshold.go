package repository

import (
	"context"
	"fmt"
	"strconv"

	"facegate.io/infrastructure/database/repository/cache"
)

const calibratedThresholdKey = "liveness:calibrated_static_threshold"

type ThresholdRepository struct {
	Cache *cache.RedisRepository
}

var thresholdRepository = ThresholdRepository{Cache: cache.Cache}

func ThresholdRepo() *ThresholdRepository {
	return &thresholdRepository
}

// Save stores the calibrated static threshold without expiry.
func (repo *ThresholdRepository) Save(ctx context.Context, threshold float64) error {
	return repo.Cache.CreateEntry(ctx, calibratedThresholdKey, strconv.FormatFloat(threshold, 'g', -1, 64), 0)
}

// Load returns nil, nil when no calibration has been applied yet.
func (repo *ThresholdRepository) Load(ctx context.Context) (*float64, error) {
	raw, err := repo.Cache.FindOne(ctx, calibratedThresholdKey)
	if err != nil || raw == nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, fmt.Errorf("stored threshold %q is not a number: %w", *raw, err)
	}
	return &value, nil
}

func (repo *ThresholdRepository) Clear(ctx context.Context) error {
	_, err := repo.Cache.DeleteOne(ctx, calibratedThresholdKey)
	return err
}
