package asynq

import (
	"fmt"

	"facegate.io/infrastructure/logger"
)

// queueLogger routes asynq's internal logging through the zap wrapper.
type queueLogger struct{}

func (queueLogger) Debug(args ...interface{}) {}

func (queueLogger) Info(args ...interface{}) {
	logger.Info(fmt.Sprint(args...))
}

func (queueLogger) Warn(args ...interface{}) {
	logger.Warning(fmt.Sprint(args...))
}

func (queueLogger) Error(args ...interface{}) {
	logger.Error(fmt.Sprint(args...))
}

func (queueLogger) Fatal(args ...interface{}) {
	logger.Error(fmt.Sprint(args...))
}
