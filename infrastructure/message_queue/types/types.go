package mq_types

import (
	"context"
	"time"
)

type TaskQueueBroker interface {
	Start(handlers map[Queues]TaskHandler) error
	Enqueue(task QueueTask) error
	Ready() bool
	Shutdown()
}

type Queues string

type TaskHandler func(ctx context.Context, payload []byte) error

type QueueTask struct {
	Name      Queues
	Payload   []byte
	Priority  TaskPriority
	ProcessIn time.Duration // second
	TimeOut   time.Duration // seconds
	MaxRetry  int
}

type TaskPriority string

const (
	Low    TaskPriority = "low"
	Medium TaskPriority = "medium"
	High   TaskPriority = "high"
)
