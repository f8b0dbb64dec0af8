package tasks

import (
	"context"

	"github.com/pr-poehali-dev/rutor-parser-site/app/ingest"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	Start()
}

// TaskSchedulerInterface is the scheduler surface used by main.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// IngesterInterface abstracts the ingestion pipeline for task execution.
type IngesterInterface interface {
	Run(ctx context.Context) ingest.Stats
}

var _ IngesterInterface = (*ingest.Ingester)(nil)
