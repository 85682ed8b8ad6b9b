package startup

import (
	liveness_usecase "facegate.io/application/usecases/liveness"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/config"
	"facegate.io/infrastructure/database"
	"facegate.io/infrastructure/env"
	"facegate.io/infrastructure/logger"
	messagequeue "facegate.io/infrastructure/message_queue"
	queue_tasks "facegate.io/infrastructure/message_queue/tasks"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"facegate.io/infrastructure/workerpool"
)

// StartEngine loads the tunables and builds the liveness engine and the
// analysis pool. The CLI uses this on its own; the server also needs
// StartServices.
func StartEngine(configFile string) error {
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return err
	}
	if err := biometric.InitialiseLivenessService(cfg); err != nil {
		return err
	}
	workerpool.InitialiseAnalysisPool(env.AnalysisWorkers())
	return nil
}

// Used to start services such as loggers, databases, queues, etc.
func StartServices(configFile string) error {
	logger.InitializeLogger()
	if err := StartEngine(configFile); err != nil {
		return err
	}
	database.SetUpDatabase()
	err := messagequeue.StartQueue(map[mq_types.Queues]mq_types.TaskHandler{
		queue_tasks.CalibrationTaskName: liveness_usecase.HandleCalibrationTask,
	})
	if err != nil {
		logger.Warning("task queue disabled; async calibration unavailable", logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
	}
	return nil
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	messagequeue.TaskQueue.Shutdown()
	if workerpool.AnalysisPool != nil {
		workerpool.AnalysisPool.Close()
	}
	database.CleanUpDatabase()
	logger.Sync()
}
