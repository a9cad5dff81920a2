package httpapi

import (
	"context"
	"database/sql"

	"bds-pipeline/internal/events"
	"bds-pipeline/internal/pipeline"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Pipeline entrypoints (injected for testability).
	RunStatus   func() pipeline.Status
	RunPipeline func(ctx context.Context) (pipeline.RowCounts, error)
}
