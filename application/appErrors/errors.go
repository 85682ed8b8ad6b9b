package apperrors

import (
	"context"
	"errors"
	"net/http"

	"facegate.io/application/constants"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/logger"
	server_response "facegate.io/infrastructure/serverResponse"
)

var (
	ErrServiceUnavailable = errors.New("a required backend is unavailable")
	ErrRunNotFound        = errors.New("calibration run not found")
	ErrNoCalibration      = errors.New("no calibrated threshold has been applied")
)

func NotFoundError(ctx interface{}, message string, requestID *string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil, requestID)
}

func NoCalibrationError(ctx interface{}, err error, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, err.Error(), nil, nil, &constants.NO_CALIBRATION_APPLIED, &requestID)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed 🙄", nil, *errMessages, nil, &requestID)
}

func ExternalDependencyError(ctx interface{}, serviceName string, err error, requestID string) {
	logger.Error(err.Error(), logger.LoggerOptions{
		Key:  "service",
		Data: serviceName,
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"Omo! Our service is temporarily down 😢. Our team is working to fix it. Please check back later.", nil, nil, nil, &requestID)
}

func ErrorProcessingPayload(ctx interface{}, requestID *string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed 🤨", nil, nil, nil, requestID)
}

func DecodeError(ctx interface{}, err error, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "could not decode image 🤨", nil, []error{err}, &constants.IMAGE_DECODE_FAILED, &requestID)
}

func TimeoutError(ctx interface{}, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusGatewayTimeout,
		"analysis took too long ⏳. Try fewer or smaller frames.", nil, nil, nil, &requestID)
}

func FatalServerError(ctx interface{}, err error, requestID string) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Omo! Our service is temporarily down 😢. Our team is working to fix it. Please check back later.", nil, nil, nil, &requestID)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint, requestID string) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode, &requestID)
}

// HandleAnalysisError maps an error returned by the liveness usecases to
// the matching response.
func HandleAnalysisError(ctx interface{}, err error, requestID string) {
	switch {
	case errors.Is(err, biometric.ErrDecode):
		DecodeError(ctx, err, requestID)
	case errors.Is(err, biometric.ErrInvalidImageBuffer):
		ClientError(ctx, err.Error(), []error{err}, &constants.INVALID_IMAGE_BUFFER, requestID)
	case errors.Is(err, biometric.ErrInvalidCalibrationLabel):
		ClientError(ctx, err.Error(), []error{err}, &constants.INVALID_CALIBRATION_LABEL, requestID)
	case errors.Is(err, biometric.ErrInsufficientFrames):
		ClientError(ctx, err.Error(), []error{err}, &constants.INSUFFICIENT_FRAMES, requestID)
	case errors.Is(err, context.DeadlineExceeded):
		TimeoutError(ctx, requestID)
	case errors.Is(err, ErrNoCalibration):
		NoCalibrationError(ctx, err, requestID)
	case errors.Is(err, ErrRunNotFound):
		NotFoundError(ctx, err.Error(), &requestID)
	case errors.Is(err, ErrServiceUnavailable):
		ExternalDependencyError(ctx, "backend", err, requestID)
	default:
		FatalServerError(ctx, err, requestID)
	}
}
