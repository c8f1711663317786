// Package store persists cleanup run history behind a driver-agnostic
// interface with SQLite and Postgres backends.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// RunStatus is the lifecycle state of a cleanup run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one invocation of the cleanup pipeline.
type Run struct {
	ID        string          `json:"id"`
	Input     string          `json:"input"`
	Status    RunStatus       `json:"status"`
	Stats     json.RawMessage `json:"stats,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status RunStatus `json:"status,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// Store defines the persistence interface for run history.
type Store interface {
	CreateRun(ctx context.Context, input string) (*Run, error)
	CompleteRun(ctx context.Context, runID string, stats json.RawMessage) error
	FailRun(ctx context.Context, runID string, cause string) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
