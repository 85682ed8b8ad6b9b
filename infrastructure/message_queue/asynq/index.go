package asynq

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"facegate.io/infrastructure/database/connection/cache"
	"facegate.io/infrastructure/logger"
	mq_types "facegate.io/infrastructure/message_queue/types"
)

var ErrQueueNotStarted = errors.New("task queue has not been started")

type AsynqBroker struct {
	Client      *asynq.Client
	server      *asynq.Server
	Concurrency int
}

// Start connects to the redis at REDIS_ADDR and begins processing in the
// background.
func (aq *AsynqBroker) Start(handlers map[mq_types.Queues]mq_types.TaskHandler) error {
	opt, err := cache.RedisOptions()
	if err != nil {
		return err
	}
	redisConnOpt := asynq.RedisClientOpt{
		Addr:     opt.Addr,
		Password: opt.Password,
	}
	concurrency := aq.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	aq.server = asynq.NewServer(redisConnOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			string(mq_types.High):   6,
			string(mq_types.Medium): 3,
			string(mq_types.Low):    1,
		},
		Logger: queueLogger{},
	})

	mux := asynq.NewServeMux()
	for name, handler := range handlers {
		h := handler
		mux.HandleFunc(string(name), func(ctx context.Context, t *asynq.Task) error {
			return h(ctx, t.Payload())
		})
	}
	if err := aq.server.Start(mux); err != nil {
		aq.server = nil
		return err
	}
	aq.Client = asynq.NewClient(redisConnOpt)
	logger.Info("task queue started", logger.LoggerOptions{Key: "concurrency", Data: concurrency})
	return nil
}

func (aq *AsynqBroker) Ready() bool {
	return aq.Client != nil
}

func (aq *AsynqBroker) Enqueue(task mq_types.QueueTask) error {
	if aq.Client == nil {
		return ErrQueueNotStarted
	}
	if task.TimeOut == 0 {
		task.TimeOut = 60
	}
	if task.MaxRetry == 0 {
		task.MaxRetry = 10
	}
	if task.Priority == "" {
		task.Priority = mq_types.Medium
	}
	info, err := aq.Client.Enqueue(asynq.NewTask(string(task.Name), task.Payload),
		asynq.ProcessIn(time.Duration(task.ProcessIn)*time.Second),
		asynq.MaxRetry(task.MaxRetry),
		asynq.Timeout(time.Second*time.Duration(task.TimeOut)),
		asynq.Queue(string(task.Priority)))
	if err != nil {
		logger.Error("could not enqueue task", logger.LoggerOptions{Key: "task", Data: task.Name}, logger.LoggerOptions{Key: "error", Data: err})
		return err
	}
	logger.Info("task enqueued", logger.LoggerOptions{Key: "task", Data: task.Name}, logger.LoggerOptions{Key: "id", Data: info.ID})
	return nil
}

func (aq *AsynqBroker) Shutdown() {
	if aq.server != nil {
		aq.server.Shutdown()
		aq.server = nil
	}
	if aq.Client != nil {
		aq.Client.Close()
		aq.Client = nil
	}
}
