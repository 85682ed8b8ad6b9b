package server_response

import (
	"github.com/gin-gonic/gin"

	"facegate.io/infrastructure/logger"
)

type ginResponder struct{}

// Respond aborts the handler chain and writes the {message, body, errors}
// envelope. requestID is echoed back when present.
func (gr ginResponder) Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, responseCode *uint, requestID *string) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return
	}
	ginCtx.Abort()
	response := map[string]any{
		"message": message,
		"body":    payload,
	}
	if responseCode != nil {
		response["response_code"] = responseCode
	}
	if requestID != nil && *requestID != "" {
		response["request_id"] = *requestID
	}
	if errs != nil {
		errMsgs := []string{}
		for _, err := range errs {
			errMsgs = append(errMsgs, err.Error())
		}
		response["errors"] = errMsgs
	}
	if code >= 500 {
		logger.Error("request failed", logger.LoggerOptions{
			Key:  "message",
			Data: message,
		}, logger.LoggerOptions{
			Key:  "status",
			Data: code,
		})
	}
	ginCtx.JSON(code, response)
}
