package tasks

import (
	"context"
	"log/slog"
)

// IngestTask runs one full ingestion batch. The batch itself swallows
// per-page and per-post failures, so Execute only fails on cancellation.
type IngestTask struct {
	Task
	ingester IngesterInterface
}

func NewIngestTask(ingester IngesterInterface) *IngestTask {
	return &IngestTask{
		Task:     NewTask(TaskTypeIngest),
		ingester: ingester,
	}
}

func (t *IngestTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stats := t.ingester.Run(ctx)

	slog.Info("Task completed",
		"type", "Ingest",
		"id", t.ID,
		"duration", t.GetDuration(),
		"parsed_total", stats.ParsedTotal,
		"stored", stats.Stored,
		"failed", stats.Failed)

	return nil
}
