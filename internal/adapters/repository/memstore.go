package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
	"github.com/okian/meetmind/pkg/metrics"
)

const defaultMaxRecords = 10_000

// MemoryStore is a mutex-guarded in-memory Store.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[string]*Record
	order      []string
	maxRecords int
	now        func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		records:    make(map[string]*Record),
		maxRecords: defaultMaxRecords,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, id string, submittedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; ok {
		return fmt.Errorf("%w: %s", ErrExists, id)
	}
	s.records[id] = &Record{ID: id, Status: model.JobPending, SubmittedAt: submittedAt}
	s.order = append(s.order, id)
	s.evictLocked()
	metrics.UpdateJobsStored(len(s.records))
	return nil
}

// evictLocked drops the oldest finished records while over capacity.
func (s *MemoryStore) evictLocked() {
	if len(s.records) <= s.maxRecords {
		return
	}
	kept := s.order[:0]
	for _, id := range s.order {
		r := s.records[id]
		if len(s.records) > s.maxRecords && r.Status.Terminal() {
			delete(s.records, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func (s *MemoryStore) transition(id string, from model.JobStatus, apply func(*Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if r.Status != from {
		return fmt.Errorf("%w: %s is %s", ErrInvalidStatus, id, r.Status)
	}
	apply(r)
	return nil
}

func (s *MemoryStore) Start(_ context.Context, id string) error {
	return s.transition(id, model.JobPending, func(r *Record) {
		t := s.now()
		r.Status = model.JobRunning
		r.StartedAt = &t
	})
}

func (s *MemoryStore) Complete(_ context.Context, id string, res pipeline.Result) error { //nolint:gocritic // result is stored by value
	return s.transition(id, model.JobRunning, func(r *Record) {
		t := s.now()
		r.Status = model.JobDone
		r.FinishedAt = &t
		r.Result = &res
	})
}

func (s *MemoryStore) Fail(_ context.Context, id string, cause error) error {
	return s.transition(id, model.JobRunning, func(r *Record) {
		t := s.now()
		r.Status = model.JobFailed
		r.FinishedAt = &t
		if cause != nil {
			r.Error = cause.Error()
		}
	})
}

// Delete forgets a job. Unknown ids are ignored.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return nil
	}
	delete(s.records, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	metrics.UpdateJobsStored(len(s.records))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *r, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) CountByStatus(_ context.Context) map[model.JobStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[model.JobStatus]int{
		model.JobPending: 0,
		model.JobRunning: 0,
		model.JobDone:    0,
		model.JobFailed:  0,
	}
	for _, r := range s.records {
		out[r.Status]++
	}
	return out
}
