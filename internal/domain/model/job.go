package model

import "time"

// JobStatus is the lifecycle state of an asynchronous extraction.
type JobStatus string

// Job states.
const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Terminal reports whether no further transitions are expected.
func (s JobStatus) Terminal() bool {
	return s == JobDone || s == JobFailed
}

// Job is one queued pipeline invocation.
type Job struct {
	ID          string     `json:"job_id"`
	Sentences   []Sentence `json:"sentences"`
	Team        Team       `json:"team"`
	Reference   time.Time  `json:"reference_time"`
	SubmittedAt time.Time  `json:"submitted_at"`
}
