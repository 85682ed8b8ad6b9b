package dto

import (
	"fmt"
	"math"

	"facegate.io/entities"
	"facegate.io/infrastructure/biometric/types"
)

const (
	MaxRequestFrames = 32
	// about 15MB of raw image data once decoded from base64
	maxImagePayloadLength = 20 << 20
)

// AnalyzeImageRequest is the body of POST /liveness/analyze.
type AnalyzeImageRequest struct {
	Image     string   `json:"image" validate:"required,image_payload"` // base64, optionally a data URI
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// TemporalRequest is the body of POST /liveness/temporal.
type TemporalRequest struct {
	Frames                 []string `json:"frames" validate:"required,min=2,max=32,dive,required,image_payload"`
	StaticThreshold        *float64 `json:"static_threshold,omitempty" validate:"omitempty,gte=-1,lte=1"`
	UseCalibratedThreshold bool     `json:"use_calibrated_threshold,omitempty"`
}

// SessionRequest is the body of POST /liveness/session.
type SessionRequest struct {
	Image                  string   `json:"image" validate:"required,image_payload"`
	Frames                 []string `json:"frames" validate:"max=32,dive,required,image_payload"`
	Threshold              *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	StaticThreshold        *float64 `json:"static_threshold,omitempty" validate:"omitempty,gte=-1,lte=1"`
	UseCalibratedThreshold bool     `json:"use_calibrated_threshold,omitempty"`
}

type CalibrationSampleDTO struct {
	Label  string   `json:"label" bson:"label" validate:"required,calibration_label"`
	Frames []string `json:"frames" bson:"frames" validate:"required,min=1,max=32,dive,required,image_payload"`
}

// TuneRequest is the body of POST /liveness/tune.
type TuneRequest struct {
	Samples []CalibrationSampleDTO `json:"samples" validate:"required,min=1,dive"`
	Async   bool                   `json:"async,omitempty"`
	Apply   bool                   `json:"apply,omitempty"`
}

const (
	DefaultRunListLimit = 20
	MaxRunListLimit     = 100
)

// ListCalibrationRunsRequest is built from the query of GET /liveness/calibrations.
type ListCalibrationRunsRequest struct {
	Limit  int64   `validate:"gte=1,lte=100"`
	Status *string `validate:"omitempty,oneof=pending completed failed"`
}

// AnalyzeImageResponse is the single-image result handed back to callers.
type AnalyzeImageResponse struct {
	RequestID  string           `json:"request_id"`
	Score      float64          `json:"score"`
	IsReal     bool             `json:"is_real"`
	Threshold  float64          `json:"threshold"`
	SpoofType  types.SpoofType  `json:"spoof_type"`
	Confidence float64          `json:"confidence"`
	Details    types.FeatureSet `json:"details"`
	ElapsedMS  int64            `json:"processing_time_ms"`
}

type TemporalResponse struct {
	RequestID           string    `json:"request_id"`
	TemporalScore       float64   `json:"temporal_score"`
	PerPairCorrelations []float64 `json:"per_pair_correlations"`
	IsStatic            bool      `json:"is_static"`
	StaticThreshold     float64   `json:"static_threshold"`
	FramesUsed          int       `json:"frames_used"`
	InsufficientFrames  bool      `json:"insufficient_frames"`
	ElapsedMS           int64     `json:"processing_time_ms"`
}

type SessionResponse struct {
	RequestID string               `json:"request_id"`
	IsReal    bool                 `json:"is_real"`
	Spoof     AnalyzeImageResponse `json:"spoof"`
	Temporal  TemporalResponse     `json:"temporal"`
	Reasons   []string             `json:"reasons,omitempty"`
	ElapsedMS int64                `json:"processing_time_ms"`
}

type TuneResponse struct {
	RunID                string                    `json:"run_id,omitempty"`
	Status               string                    `json:"status"`
	PerSample            []types.SampleCorrelation `json:"per_sample,omitempty"`
	RealCount            int                       `json:"real_count"`
	SpoofCount           int                       `json:"spoof_count"`
	MeanReal             *float64                  `json:"mean_real"`
	MeanSpoof            *float64                  `json:"mean_spoof"`
	RecommendedThreshold *float64                  `json:"recommended_threshold"`
	Applied              bool                      `json:"applied"`
	Warnings             []string                  `json:"warnings,omitempty"`
}

type CalibrationRunsResponse struct {
	Runs  []entities.CalibrationRun `json:"runs"`
	Count int                       `json:"count"`
}

type ThresholdResponse struct {
	StaticThreshold float64 `json:"static_threshold"`
	Calibrated      bool    `json:"calibrated"`
	ScoreThreshold  float64 `json:"score_threshold"`
}

// ValidateAnalyzeImageRequest runs the checks the struct tags can't express.
func ValidateAnalyzeImageRequest(req *AnalyzeImageRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if err := validateImageInput(req.Image, "image"); err != nil {
		return err
	}
	return validateOptionalRange(req.Threshold, "threshold", 0, 100)
}

func ValidateTemporalRequest(req *TemporalRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if len(req.Frames) < 2 || len(req.Frames) > MaxRequestFrames {
		return fmt.Errorf("frames must contain between 2 and %d images, got: %d", MaxRequestFrames, len(req.Frames))
	}
	for i, frame := range req.Frames {
		if err := validateImageInput(frame, fmt.Sprintf("frames[%d]", i)); err != nil {
			return err
		}
	}
	if req.UseCalibratedThreshold && req.StaticThreshold != nil {
		return fmt.Errorf("static_threshold and use_calibrated_threshold are mutually exclusive")
	}
	return validateOptionalRange(req.StaticThreshold, "static_threshold", -1, 1)
}

func ValidateSessionRequest(req *SessionRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if err := validateImageInput(req.Image, "image"); err != nil {
		return err
	}
	if len(req.Frames) > MaxRequestFrames {
		return fmt.Errorf("frames must contain at most %d images, got: %d", MaxRequestFrames, len(req.Frames))
	}
	for i, frame := range req.Frames {
		if err := validateImageInput(frame, fmt.Sprintf("frames[%d]", i)); err != nil {
			return err
		}
	}
	if req.UseCalibratedThreshold && req.StaticThreshold != nil {
		return fmt.Errorf("static_threshold and use_calibrated_threshold are mutually exclusive")
	}
	if err := validateOptionalRange(req.Threshold, "threshold", 0, 100); err != nil {
		return err
	}
	return validateOptionalRange(req.StaticThreshold, "static_threshold", -1, 1)
}

func ValidateTuneRequest(req *TuneRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if len(req.Samples) == 0 {
		return fmt.Errorf("samples cannot be empty")
	}
	for i, sample := range req.Samples {
		if !types.CalibrationLabel(sample.Label).Valid() {
			return fmt.Errorf("samples[%d].label must be real or spoof, got: %q", i, sample.Label)
		}
		if len(sample.Frames) == 0 || len(sample.Frames) > MaxRequestFrames {
			return fmt.Errorf("samples[%d].frames must contain between 1 and %d images, got: %d", i, MaxRequestFrames, len(sample.Frames))
		}
		for j, frame := range sample.Frames {
			if err := validateImageInput(frame, fmt.Sprintf("samples[%d].frames[%d]", i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func ValidateListCalibrationRunsRequest(req *ListCalibrationRunsRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if req.Limit < 1 || req.Limit > MaxRunListLimit {
		return fmt.Errorf("limit must be between 1 and %d, got: %d", MaxRunListLimit, req.Limit)
	}
	if req.Status != nil && !entities.CalibrationRunStatus(*req.Status).Valid() {
		return fmt.Errorf("status must be pending, completed or failed, got: %q", *req.Status)
	}
	return nil
}

func validateImageInput(image, fieldName string) error {
	if image == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if len(image) > maxImagePayloadLength {
		return fmt.Errorf("%s too large (max %d base64 characters)", fieldName, maxImagePayloadLength)
	}
	return nil
}

func validateOptionalRange(value *float64, fieldName string, lower, upper float64) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || *value < lower || *value > upper {
		return fmt.Errorf("%s must be between %v and %v, got: %v", fieldName, lower, upper, *value)
	}
	return nil
}
