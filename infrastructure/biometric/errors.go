package biometric

import "errors"

var (
	ErrInvalidImageBuffer        = errors.New("invalid image buffer")
	ErrDecode                    = errors.New("image decode failed")
	ErrInsufficientFrames        = errors.New("insufficient frames for temporal analysis")
	ErrCalibrationDataIncomplete = errors.New("calibration data incomplete")
)

var ErrInvalidCalibrationLabel = errors.New("invalid calibration label")
