package liveness_usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/repository"
	"facegate.io/entities"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/database/repository/cache"
	"facegate.io/infrastructure/database/repository/mongo"
	"facegate.io/infrastructure/env"
	messagequeue "facegate.io/infrastructure/message_queue"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"facegate.io/infrastructure/workerpool"
)

type RunStore interface {
	CreateOne(ctx context.Context, payload entities.CalibrationRun) (*entities.CalibrationRun, error)
	FindByID(ctx context.Context, id string) (*entities.CalibrationRun, error)
	FindMany(ctx context.Context, filter map[string]interface{}, opts *mongo.FindOptions) (*[]entities.CalibrationRun, error)
	UpdatePartialByID(ctx context.Context, id string, payload map[string]interface{}) (int64, error)
}

type ThresholdStore interface {
	Save(ctx context.Context, threshold float64) error
	Load(ctx context.Context) (*float64, error)
	Clear(ctx context.Context) error
}

// swapped out in tests
var (
	runStore       = func() RunStore { return repository.CalibrationRunRepo() }
	thresholdStore = func() ThresholdStore { return repository.ThresholdRepo() }
	taskQueue      = func() mq_types.TaskQueueBroker { return messagequeue.TaskQueue }
	engine         = func() biometric.LivenessEngine { return biometric.LivenessService }
	analysisPool   = func() *workerpool.Pool { return workerpool.AnalysisPool }
	timeout        = env.AnalysisTimeout
)

func currentEngine() (biometric.LivenessEngine, error) {
	e := engine()
	if e == nil {
		return nil, fmt.Errorf("%w: liveness engine not initialised", apperrors.ErrServiceUnavailable)
	}
	return e, nil
}

// runBounded executes fn on the analysis pool under the configured timeout.
// When the deadline passes first the caller gets context.DeadlineExceeded
// and whatever fn later produces is ignored.
func runBounded(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout())
	defer cancel()

	pool := analysisPool()
	if pool == nil {
		return fn(ctx)
	}
	var fnErr error
	if err := pool.Do(ctx, func() { fnErr = fn(ctx) }); err != nil {
		return err
	}
	return fnErr
}

// backendError turns a missing mongo/redis connection into a 503.
func backendError(err error) error {
	if errors.Is(err, mongo.ErrCollectionUnavailable) || errors.Is(err, cache.ErrCacheUnavailable) {
		return fmt.Errorf("%w: %v", apperrors.ErrServiceUnavailable, err)
	}
	return err
}

func elapsedMS(started time.Time) int64 {
	return time.Since(started).Milliseconds()
}
