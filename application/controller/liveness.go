package controller

import (
	"net/http"

	apperrors "facegate.io/application/appErrors"
	"facegate.io/application/constants"
	"facegate.io/application/controller/dto"
	"facegate.io/application/interfaces"
	liveness_usecase "facegate.io/application/usecases/liveness"
	server_response "facegate.io/infrastructure/serverResponse"
	"facegate.io/infrastructure/validator"
)

// AnalyzeImage scores a single still image.
func AnalyzeImage(ctx *interfaces.ApplicationContext[dto.AnalyzeImageRequest]) {
	if !validatePayload(ctx, ctx.Body, dto.ValidateAnalyzeImageRequest(ctx.Body)) {
		return
	}
	result, err := liveness_usecase.AnalyzeImageUseCase(ctx.Ctx.Request.Context(), ctx.Body, ctx.RequestID)
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness check completed", result, nil, nil, &ctx.RequestID)
}

// AnalyzeFrames runs the temporal static-burst check.
func AnalyzeFrames(ctx *interfaces.ApplicationContext[dto.TemporalRequest]) {
	if !validatePayload(ctx, ctx.Body, dto.ValidateTemporalRequest(ctx.Body)) {
		return
	}
	result, err := liveness_usecase.AnalyzeFramesUseCase(ctx.Ctx.Request.Context(), ctx.Body, ctx.RequestID)
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "temporal analysis completed", result, nil, nil, &ctx.RequestID)
}

func AnalyzeSession(ctx *interfaces.ApplicationContext[dto.SessionRequest]) {
	if !validatePayload(ctx, ctx.Body, dto.ValidateSessionRequest(ctx.Body)) {
		return
	}
	result, err := liveness_usecase.AnalyzeSessionUseCase(ctx.Ctx.Request.Context(), ctx.Body, ctx.RequestID)
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "liveness session completed", result, nil, nil, &ctx.RequestID)
}

// TuneThreshold calibrates the static threshold from labelled bursts.
func TuneThreshold(ctx *interfaces.ApplicationContext[dto.TuneRequest]) {
	if !validatePayload(ctx, ctx.Body, dto.ValidateTuneRequest(ctx.Body)) {
		return
	}
	result, queued, err := liveness_usecase.TuneThresholdUseCase(ctx.Ctx.Request.Context(), ctx.Body)
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	if queued {
		server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted, "calibration queued", result, nil, &constants.CALIBRATION_QUEUED, &ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "calibration completed", result, nil, nil, &ctx.RequestID)
}

func FetchCalibrationRun(ctx *interfaces.ApplicationContext[any]) {
	run, err := liveness_usecase.FetchCalibrationRunUseCase(ctx.Ctx.Request.Context(), ctx.GetParam("id"))
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "calibration run fetched", run, nil, nil, &ctx.RequestID)
}

func ActiveThreshold(ctx *interfaces.ApplicationContext[any]) {
	result, err := liveness_usecase.ActiveThresholdUseCase(ctx.Ctx.Request.Context())
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "active thresholds fetched", result, nil, nil, &ctx.RequestID)
}

// ListCalibrationRuns pages through stored tuning runs, newest first.
func ListCalibrationRuns(ctx *interfaces.ApplicationContext[dto.ListCalibrationRunsRequest]) {
	if !validatePayload(ctx, ctx.Body, dto.ValidateListCalibrationRunsRequest(ctx.Body)) {
		return
	}
	result, err := liveness_usecase.ListCalibrationRunsUseCase(ctx.Ctx.Request.Context(), ctx.Body)
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "calibration runs fetched", result, nil, nil, &ctx.RequestID)
}

func ClearThreshold(ctx *interfaces.ApplicationContext[any]) {
	result, err := liveness_usecase.ClearThresholdUseCase(ctx.Ctx.Request.Context())
	if err != nil {
		apperrors.HandleAnalysisError(ctx.Ctx, err, ctx.RequestID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "calibrated threshold cleared", result, nil, nil, &ctx.RequestID)
}

// validatePayload runs the struct tag rules and then the hand written checks;
// it writes the 422 itself and reports whether the handler may continue.
func validatePayload[T any](ctx *interfaces.ApplicationContext[T], body *T, manualErr error) bool {
	if validationErr := validator.ValidatorInstance.ValidateStruct(body); validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.RequestID)
		return false
	}
	if manualErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, &[]error{manualErr}, ctx.RequestID)
		return false
	}
	return true
}
