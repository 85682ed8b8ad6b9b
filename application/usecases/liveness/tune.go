package liveness_usecase

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/controller/dto"
	"facegate.io/entities"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
	queue_tasks "facegate.io/infrastructure/message_queue/tasks"
)

// TuneThresholdUseCase runs calibration inline, or hands it to the task queue
// when payload.Async is set. The returned bool reports whether the work was
// queued.
func TuneThresholdUseCase(ctx context.Context, payload *dto.TuneRequest) (*dto.TuneResponse, bool, error) {
	e, err := currentEngine()
	if err != nil {
		return nil, false, err
	}
	if payload.Async {
		response, err := queueCalibration(ctx, payload)
		return response, err == nil, err
	}

	var result *types.CalibrationResult
	err = runBounded(ctx, func(ctx context.Context) error {
		samples := decodeSamples(labelledFrames(payload.Samples), e.Config().Temporal.MaxFrames)
		calibrated, err := e.Calibrate(ctx, samples)
		result = calibrated
		return err
	})
	if err != nil {
		return nil, false, err
	}

	run := entities.CalibrationRun{SampleCount: len(payload.Samples), Apply: payload.Apply}
	run.Complete(result)
	if payload.Apply {
		if err := applyThreshold(ctx, &run); err != nil {
			return nil, false, err
		}
	}
	if stored, err := runStore().CreateOne(ctx, run); err != nil {
		logger.Warning("calibration run not persisted", logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
	} else {
		run.ID = stored.ID
	}

	logger.Info("threshold calibration completed", logger.LoggerOptions{
		Key:  "realCount",
		Data: result.RealCount,
	}, logger.LoggerOptions{
		Key:  "spoofCount",
		Data: result.SpoofCount,
	}, logger.LoggerOptions{
		Key:  "applied",
		Data: run.Applied,
	})
	return tuneResponse(&run), false, nil
}

func queueCalibration(ctx context.Context, payload *dto.TuneRequest) (*dto.TuneResponse, error) {
	queue := taskQueue()
	if queue == nil || !queue.Ready() {
		return nil, fmt.Errorf("%w: task queue is not running", apperrors.ErrServiceUnavailable)
	}
	run, err := runStore().CreateOne(ctx, entities.CalibrationRun{
		SampleCount: len(payload.Samples),
		Apply:       payload.Apply,
	})
	if err != nil {
		return nil, backendError(err)
	}

	samples := make([]queue_tasks.CalibrationSamplePayload, len(payload.Samples))
	for i, sample := range payload.Samples {
		samples[i] = queue_tasks.CalibrationSamplePayload{Label: sample.Label, Frames: sample.Frames}
	}
	task, err := queue_tasks.NewCalibrationTask(queue_tasks.CalibrationPayload{
		RunID:   run.ID,
		Samples: samples,
		Apply:   payload.Apply,
	})
	if err == nil {
		err = queue.Enqueue(task)
	}
	if err != nil {
		run.Fail(err)
		recordRun(ctx, run)
		return nil, err
	}
	return tuneResponse(run), nil
}

// HandleCalibrationTask is the queue worker side of an async tuning request.
func HandleCalibrationTask(ctx context.Context, body []byte) error {
	payload, err := queue_tasks.ParseCalibrationPayload(body)
	if err != nil {
		logger.Error("an error occured while unmarshalling calibration queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	e, err := currentEngine()
	if err != nil {
		return err
	}
	run, err := runStore().FindByID(ctx, payload.RunID)
	if err != nil {
		return backendError(err)
	}
	if run == nil {
		logger.Warning("calibration run vanished before processing", logger.LoggerOptions{Key: "runID", Data: payload.RunID})
		return fmt.Errorf("%w: %s", asynq.SkipRetry, payload.RunID)
	}

	frames := make([]labelled, len(payload.Samples))
	for i, sample := range payload.Samples {
		frames[i] = labelled{label: sample.Label, frames: sample.Frames}
	}
	samples := decodeSamples(frames, e.Config().Temporal.MaxFrames)
	result, err := e.Calibrate(ctx, samples)
	if err != nil {
		run.Fail(err)
		recordRun(ctx, run)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	run.Complete(result)
	if payload.Apply {
		if err := applyThreshold(ctx, run); err != nil {
			logger.Error("could not apply calibrated threshold", logger.LoggerOptions{Key: "runID", Data: run.ID}, logger.LoggerOptions{Key: "error", Data: err})
		}
	}
	if _, err := runStore().UpdatePartialByID(ctx, run.ID, runUpdate(run)); err != nil {
		return backendError(err)
	}
	logger.Info("async calibration completed", logger.LoggerOptions{Key: "runID", Data: run.ID}, logger.LoggerOptions{Key: "applied", Data: run.Applied})
	return nil
}

func FetchCalibrationRunUseCase(ctx context.Context, id string) (*entities.CalibrationRun, error) {
	run, err := runStore().FindByID(ctx, id)
	if err != nil {
		return nil, backendError(err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRunNotFound, id)
	}
	return run, nil
}

func ActiveThresholdUseCase(ctx context.Context) (*dto.ThresholdResponse, error) {
	e, err := currentEngine()
	if err != nil {
		return nil, err
	}
	response := &dto.ThresholdResponse{
		StaticThreshold: e.Config().Temporal.StaticThreshold,
		ScoreThreshold:  e.Config().Scoring.DefaultThreshold,
	}
	calibrated, err := thresholdStore().Load(ctx)
	if err != nil {
		return nil, backendError(err)
	}
	if calibrated != nil {
		response.StaticThreshold = *calibrated
		response.Calibrated = true
	}
	return response, nil
}

// applyThreshold caches the recommendation as the active static threshold.
// Runs without a recommendation are left unapplied.
func applyThreshold(ctx context.Context, run *entities.CalibrationRun) error {
	if run.RecommendedThreshold == nil {
		run.Warnings = append(run.Warnings, "threshold not applied: no recommendation was produced")
		return nil
	}
	if err := thresholdStore().Save(ctx, *run.RecommendedThreshold); err != nil {
		return backendError(err)
	}
	run.Applied = true
	return nil
}

type labelled struct {
	label  string
	frames []string
}

func labelledFrames(samples []dto.CalibrationSampleDTO) []labelled {
	out := make([]labelled, len(samples))
	for i, sample := range samples {
		out[i] = labelled{label: sample.Label, frames: sample.Frames}
	}
	return out
}

func decodeSamples(samples []labelled, maxFrames int) []biometric.CalibrationSample {
	out := make([]biometric.CalibrationSample, len(samples))
	for i, sample := range samples {
		out[i] = biometric.CalibrationSample{
			Label:  types.CalibrationLabel(sample.label),
			Frames: decodeFrames(sample.frames, maxFrames),
		}
	}
	return out
}

// recordRun writes the run's outcome back. A failure here leaves the stored
// run pending, so it is logged with the outcome it was meant to record.
func recordRun(ctx context.Context, run *entities.CalibrationRun) {
	if _, err := runStore().UpdatePartialByID(ctx, run.ID, runUpdate(run)); err != nil {
		logger.Error("could not record calibration run outcome", logger.LoggerOptions{
			Key:  "runID",
			Data: run.ID,
		}, logger.LoggerOptions{
			Key:  "status",
			Data: run.Status,
		}, logger.LoggerOptions{
			Key:  "runError",
			Data: run.Error,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

func runUpdate(run *entities.CalibrationRun) map[string]interface{} {
	return map[string]interface{}{
		"status":               run.Status,
		"realCount":            run.RealCount,
		"spoofCount":           run.SpoofCount,
		"perSample":            run.PerSample,
		"meanReal":             run.MeanReal,
		"meanSpoof":            run.MeanSpoof,
		"recommendedThreshold": run.RecommendedThreshold,
		"warnings":             run.Warnings,
		"applied":              run.Applied,
		"error":                run.Error,
		"completedAt":          run.CompletedAt,
	}
}

func tuneResponse(run *entities.CalibrationRun) *dto.TuneResponse {
	return &dto.TuneResponse{
		RunID:                run.ID,
		Status:               string(run.Status),
		PerSample:            run.PerSample,
		RealCount:            run.RealCount,
		SpoofCount:           run.SpoofCount,
		MeanReal:             run.MeanReal,
		MeanSpoof:            run.MeanSpoof,
		RecommendedThreshold: run.RecommendedThreshold,
		Applied:              run.Applied,
		Warnings:             run.Warnings,
	}
}

