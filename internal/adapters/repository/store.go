// Package repository keeps asynchronous job state and results.
package repository

import (
	"context"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
)

// Record is the stored view of one job.
type Record struct {
	ID          string           `json:"job_id"`
	Status      model.JobStatus  `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
	StartedAt   *time.Time       `json:"started_at,omitempty"`
	FinishedAt  *time.Time       `json:"finished_at,omitempty"`
	Error       string           `json:"error,omitempty"`
	Result      *pipeline.Result `json:"result,omitempty"`
}

// Store tracks job lifecycle: pending -> running -> done | failed.
type Store interface {
	// Create registers a pending job. Returns ErrExists for a known id.
	Create(ctx context.Context, id string, submittedAt time.Time) error
	// Start moves a pending job to running.
	Start(ctx context.Context, id string) error
	// Complete stores the result of a running job.
	Complete(ctx context.Context, id string, res pipeline.Result) error
	// Fail records why a job could not finish.
	Fail(ctx context.Context, id string, cause error) error
	// Delete forgets a job, e.g. one that could not be queued.
	Delete(ctx context.Context, id string) error
	// Get returns a copy of the record. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (Record, error)
	// Count returns the number of records held.
	Count(ctx context.Context) int
	// CountByStatus returns record counts per status.
	CountByStatus(ctx context.Context) map[model.JobStatus]int
}
