package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"facegate.io/infrastructure/biometric/types"
)

func validateCalibrationLabel(fl validator.FieldLevel) bool {
	return types.CalibrationLabel(fl.Field().String()).Valid()
}

// validateImagePayload accepts a base64 body with or without a data URI
// prefix. Decoding happens later; this only rejects obvious junk.
func validateImagePayload(fl validator.FieldLevel) bool {
	payload := strings.TrimSpace(fl.Field().String())
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx == -1 || !strings.Contains(payload[:idx], "base64") {
			return false
		}
		payload = payload[idx+1:]
	}
	if payload == "" {
		return false
	}
	for _, r := range payload {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '+', r == '/', r == '=', r == '\n', r == '\r':
		default:
			return false
		}
	}
	return true
}
