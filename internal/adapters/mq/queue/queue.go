// Package queue holds extraction jobs between submission and the workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/pkg/metrics"
)

const defaultQueueCapacity = 1_000

// Job is the payload flowing through the queue.
type Job = model.Job

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job without blocking. It returns ErrQueueFull when
	// the queue is at capacity and ErrQueueClosed after Close.
	Enqueue(ctx context.Context, j Job) error

	// Dequeue returns a channel of jobs that is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the number of waiting jobs.
	Len(ctx context.Context) int

	// Close stops accepting jobs. Jobs already queued are still delivered.
	Close() error

	IsClosed() bool

	// Flush closes the queue and hands back the jobs nobody will consume.
	Flush(ctx context.Context) []Job
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool

	// forwarders counts live Dequeue goroutines; stranded holds jobs a
	// cancelled forwarder could not hand back after Close.
	forwarders sync.WaitGroup
	strandMu   sync.Mutex
	stranded   []Job
}

// NewInMemoryQueue creates an in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error { //nolint:gocritic // jobs travel by value
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return ErrQueueClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError("context_cancelled")
		return err
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordQueueEnqueueError("full")
		return ErrQueueFull
	}
}

// Dequeue returns a channel that receives jobs as they become available.
// Once ctx is cancelled the forwarding goroutine exits; a job it already
// took is put back for the next consumer or for Flush.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	q.forwarders.Add(1)
	go func() {
		defer q.forwarders.Done()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case j, ok := <-q.jobs:
				if !ok {
					return
				}
				select {
				case out <- j:
					metrics.RecordQueueDequeue()
					metrics.UpdateQueueSize(len(q.jobs))
				case <-ctx.Done():
					q.putBack(j)
					return
				}
			}
		}
	}()
	return out
}

func (q *InMemoryQueue) putBack(j Job) { //nolint:gocritic // jobs travel by value
	q.mu.RLock()
	if !q.closed {
		select {
		case q.jobs <- j:
			q.mu.RUnlock()
			return
		default:
		}
	}
	q.mu.RUnlock()

	q.strandMu.Lock()
	q.stranded = append(q.stranded, j)
	q.strandMu.Unlock()
}

// Flush closes the queue and returns every job no consumer will receive.
// It waits for live Dequeue goroutines to exit until ctx is done.
func (q *InMemoryQueue) Flush(ctx context.Context) []Job {
	_ = q.Close()

	done := make(chan struct{})
	go func() {
		q.forwarders.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	var left []Job
	for j := range q.jobs {
		left = append(left, j)
	}
	q.strandMu.Lock()
	left = append(left, q.stranded...)
	q.stranded = nil
	q.strandMu.Unlock()

	metrics.UpdateQueueSize(0)
	return left
}

// Len returns the number of waiting jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	n := len(q.jobs)
	metrics.UpdateQueueSize(n)
	return n
}

// Close stops accepting jobs.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
