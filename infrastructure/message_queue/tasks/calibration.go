package queue_tasks

import (
	"encoding/json"
	"errors"

	mq_types "facegate.io/infrastructure/message_queue/types"
)

var CalibrationTaskName mq_types.Queues = "liveness_calibration"

type CalibrationSamplePayload struct {
	Label  string   `json:"label"`
	Frames []string `json:"frames"`
}

// CalibrationPayload carries the raw base64 frames so the worker does not
// depend on the API process that accepted the request.
type CalibrationPayload struct {
	RunID   string                     `json:"runID"`
	Samples []CalibrationSamplePayload `json:"samples"`
	Apply   bool                       `json:"apply"`
}

func NewCalibrationTask(payload CalibrationPayload) (mq_types.QueueTask, error) {
	if payload.RunID == "" {
		return mq_types.QueueTask{}, errors.New("calibration task needs a run id")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return mq_types.QueueTask{}, err
	}
	return mq_types.QueueTask{
		Name:     CalibrationTaskName,
		Payload:  body,
		Priority: mq_types.Medium,
		TimeOut:  300,
		MaxRetry: 3,
	}, nil
}

func ParseCalibrationPayload(body []byte) (*CalibrationPayload, error) {
	var payload CalibrationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.RunID == "" {
		return nil, errors.New("calibration payload is missing runID")
	}
	return &payload, nil
}
