// Package worker runs queued extraction jobs through the pipeline and
// records their outcome.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
	"github.com/okian/meetmind/pkg/logger"
	"github.com/okian/meetmind/pkg/metrics"
)

const workerShutdownTimeout = 5 * time.Second

// ErrStopped marks jobs still queued when the pool was stopped.
var ErrStopped = errors.New("worker pool stopped before the job ran")

// Processor runs one job.
type Processor interface {
	Process(ctx context.Context, job model.Job) (pipeline.Result, error)
}

// Recorder persists job state transitions.
type Recorder interface {
	Start(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, res pipeline.Result) error
	Fail(ctx context.Context, id string, cause error) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Job
}

// InMemoryWorker consumes jobs from a queue until it is stopped or the
// queue is closed and drained.
type InMemoryWorker struct {
	queue     Queue
	processor Processor
	recorder  Recorder
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(queue Queue, processor Processor, recorder Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		processor: processor,
		recorder:  recorder,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes jobs until ctx is cancelled, Shutdown is called or the
// queue channel closes.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed", logger.String("job_id", job.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker after its current job.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) processJob(ctx context.Context, job model.Job) error { //nolint:gocritic // jobs travel by value
	start := time.Now()
	metrics.AddWorkerBusy(1)
	defer func() {
		metrics.AddWorkerBusy(-1)
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.recorder.Start(ctx, job.ID); err != nil {
		metrics.RecordErrorByComponent("worker", "store")
		return fmt.Errorf("start job %s: %w", job.ID, err)
	}

	res, err := w.processor.Process(ctx, job)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "pipeline")
		metrics.RecordJobFinished(string(model.JobFailed))
		if ferr := w.recorder.Fail(ctx, job.ID, err); ferr != nil {
			return fmt.Errorf("record failure of job %s: %w", job.ID, ferr)
		}
		return fmt.Errorf("process job %s: %w", job.ID, err)
	}

	if err := w.recorder.Complete(ctx, job.ID, res); err != nil {
		metrics.RecordErrorByComponent("worker", "store")
		return fmt.Errorf("complete job %s: %w", job.ID, err)
	}
	metrics.RecordJobFinished(string(model.JobDone))
	w.logger.Debug(ctx, "job done",
		logger.String("job_id", job.ID),
		logger.Int("tasks", len(res.Tasks)),
		logger.Duration("took", time.Since(start)))
	return nil
}

// Flusher hands back the jobs a closed queue will never deliver.
type Flusher interface {
	Flush(ctx context.Context) []model.Job
}

// Pool manages a fixed set of workers sharing one queue.
type Pool struct {
	workers  []*InMemoryWorker
	queue    Queue
	recorder Recorder
	cancel   context.CancelFunc
	logger   logger.Logger
}

// NewPool creates count workers. A count below one means runtime.NumCPU().
func NewPool(count int, queue Queue, processor Processor, recorder Recorder, l logger.Logger) *Pool {
	if count < 1 {
		count = runtime.NumCPU()
	}
	if l == nil {
		l = logger.Nop()
	}
	p := &Pool{
		workers:  make([]*InMemoryWorker, count),
		queue:    queue,
		recorder: recorder,
		cancel:   func() {},
		logger:   l.Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(queue, processor, recorder,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(l))
	}
	metrics.UpdateWorkerCount(count)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers, waits briefly for each and fails every job
// left in the queue with ErrStopped.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker did not stop", logger.Int("worker_id", i))
		}
	}
	p.cancel()
	p.abandon(ctx)
}

func (p *Pool) abandon(ctx context.Context) {
	f, ok := p.queue.(Flusher)
	if !ok {
		return
	}
	for _, job := range f.Flush(ctx) {
		if err := p.recorder.Start(ctx, job.ID); err != nil {
			p.logger.Warn(ctx, "abandoned job not pending", logger.String("job_id", job.ID), logger.Error(err))
			continue
		}
		if err := p.recorder.Fail(ctx, job.ID, ErrStopped); err != nil {
			p.logger.Error(ctx, "failed to record abandoned job", logger.String("job_id", job.ID), logger.Error(err))
			continue
		}
		metrics.RecordJobFinished(string(model.JobFailed))
		p.logger.Warn(ctx, "job abandoned on stop", logger.String("job_id", job.ID))
	}
}

// Drain closes the queue, when it can be closed, and waits for workers to
// finish the remaining jobs.
func (p *Pool) Drain(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			return ctx.Err()
		}
	}
	return nil
}
