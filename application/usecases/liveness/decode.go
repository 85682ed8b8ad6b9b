package liveness_usecase

import (
	"fmt"

	"facegate.io/application/utils"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/logger"
)

func decodeImage(payload string) (*biometric.ImageBuffer, error) {
	raw, err := utils.DecodeBase64Image(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", biometric.ErrDecode, err)
	}
	return biometric.DecodeImage(raw)
}

// decodeFrames keeps the newest maxFrames payloads, then drops the ones that
// fail to decode. Order is preserved so the burst stays chronological.
func decodeFrames(payloads []string, maxFrames int) []*biometric.ImageBuffer {
	if maxFrames > 0 && len(payloads) > maxFrames {
		payloads = payloads[len(payloads)-maxFrames:]
	}
	frames := make([]*biometric.ImageBuffer, 0, len(payloads))
	for i, payload := range payloads {
		frame, err := decodeImage(payload)
		if err != nil {
			logger.Warning("dropping undecodable frame", logger.LoggerOptions{
				Key:  "index",
				Data: i,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err.Error(),
			})
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}
