package entities

import (
	"time"

	"facegate.io/application/utils"
	"facegate.io/infrastructure/biometric/types"
)

type CalibrationRunStatus string

const (
	CalibrationRunPending   CalibrationRunStatus = "pending"
	CalibrationRunCompleted CalibrationRunStatus = "completed"
	CalibrationRunFailed    CalibrationRunStatus = "failed"
)

func (s CalibrationRunStatus) Valid() bool {
	return s == CalibrationRunPending || s == CalibrationRunCompleted || s == CalibrationRunFailed
}

// CalibrationRun records one threshold tuning run and its outcome.
type CalibrationRun struct {
	Status               CalibrationRunStatus      `bson:"status" json:"status"`
	SampleCount          int                       `bson:"sampleCount" json:"sampleCount"`
	RealCount            int                       `bson:"realCount" json:"realCount"`
	SpoofCount           int                       `bson:"spoofCount" json:"spoofCount"`
	PerSample            []types.SampleCorrelation `bson:"perSample" json:"perSample"`
	MeanReal             *float64                  `bson:"meanReal" json:"meanReal"`
	MeanSpoof            *float64                  `bson:"meanSpoof" json:"meanSpoof"`
	RecommendedThreshold *float64                  `bson:"recommendedThreshold" json:"recommendedThreshold"`
	Warnings             []string                  `bson:"warnings" json:"warnings"`
	Apply                bool                      `bson:"apply" json:"apply"`
	Applied              bool                      `bson:"applied" json:"applied"`
	Error                *string                   `bson:"error" json:"error"`
	CompletedAt          *time.Time                `bson:"completedAt" json:"completedAt"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model CalibrationRun) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	if model.Status == "" {
		model.Status = CalibrationRunPending
	}
	model.UpdatedAt = now
	return &model
}

// Complete copies a calibration result onto the run.
func (model *CalibrationRun) Complete(result *types.CalibrationResult) {
	now := time.Now()
	model.Status = CalibrationRunCompleted
	model.PerSample = result.PerSample
	model.RealCount = result.RealCount
	model.SpoofCount = result.SpoofCount
	model.MeanReal = result.MeanReal
	model.MeanSpoof = result.MeanSpoof
	model.RecommendedThreshold = result.RecommendedThreshold
	model.Warnings = result.Warnings
	model.CompletedAt = &now
}

func (model *CalibrationRun) Fail(err error) {
	now := time.Now()
	msg := err.Error()
	model.Status = CalibrationRunFailed
	model.Error = &msg
	model.CompletedAt = &now
}
