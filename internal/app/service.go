// Package service runs the extraction pipeline synchronously or through the
// job queue, and exposes the operations the HTTP API needs.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/meetmind/internal/adapters/mq/queue"
	"github.com/okian/meetmind/internal/adapters/mq/worker"
	"github.com/okian/meetmind/internal/adapters/repository"
	"github.com/okian/meetmind/internal/domain/dedupe"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
	"github.com/okian/meetmind/pkg/logger"
	"github.com/okian/meetmind/pkg/metrics"
)

const drainTimeout = 10 * time.Second

// Request is one extraction request.
type Request struct {
	// JobID makes asynchronous submissions idempotent. Generated when empty.
	JobID string `json:"job_id,omitempty"`
	// Reference is the instant deadlines are resolved against. Defaults to now.
	Reference *time.Time `json:"reference_time,omitempty"`
	// Sentences are the preprocessed transcript sentences.
	Sentences []model.Sentence `json:"sentences"`
	// Team overrides the default roster.
	Team *model.Team `json:"team,omitempty"`
}

// jobProcessor adapts the Service to worker.Processor.
type jobProcessor struct {
	s *Service
}

func (a jobProcessor) Process(ctx context.Context, job model.Job) (pipeline.Result, error) { //nolint:gocritic // jobs travel by value
	return a.s.run(ctx, job.Sentences, job.Team, job.Reference)
}

// Service implements the API dependencies for meeting task extraction.
type Service struct {
	mu sync.RWMutex

	store   *repository.MemoryStore
	deduper dedupe.Deduper
	queue   *queue.InMemoryQueue
	pool    *worker.Pool

	workerCount   int
	queueSize     int
	dedupeSize    int
	maxJobResults int
	maxSentences  int
	team          model.Team
	loc           *time.Location
	now           func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU(),
		queueSize:     1_000,
		dedupeSize:    10_000,
		maxJobResults: 10_000,
		loc:           time.UTC,
		now:           time.Now,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the queue, store and worker pool and starts the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting extraction service...")

	s.store = repository.NewMemoryStore(
		repository.WithMaxRecords(s.maxJobResults),
		repository.WithClock(s.now),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, jobProcessor{s: s}, s.store, s.logger)
	// Workers outlive the request that started the service.
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "extraction service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("teamSize", len(s.team.Members)),
	)
	return nil
}

// Stop closes the queue and waits for queued jobs to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping extraction service...")
	if err := s.pool.Drain(ctx); err != nil {
		s.logger.Warn(ctx, "queue not drained, stopping workers", logger.Error(err))
		s.pool.Stop()
	}
	s.started = false
	s.logger.Info(ctx, "extraction service stopped")
}

// Team returns the default roster.
func (s *Service) Team() model.Team {
	return s.team
}

// Process runs the pipeline synchronously.
func (s *Service) Process(ctx context.Context, req Request) (pipeline.Result, error) {
	if err := s.validate(req); err != nil {
		return pipeline.Result{}, err
	}
	return s.run(ctx, req.Sentences, s.teamFor(req), s.referenceFor(req))
}

// Submit queues a request. A job id seen before returns duplicate=true and
// queues nothing.
func (s *Service) Submit(ctx context.Context, req Request) (jobID string, duplicate bool, err error) {
	if err := s.validate(req); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return "", false, ErrNotStarted
	}

	jobID = req.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}
	if s.deduper.SeenAndRecord(ctx, jobID) {
		metrics.RecordJobDuplicate()
		s.logger.Debug(ctx, "duplicate job", logger.String("job_id", jobID))
		return jobID, true, nil
	}

	submitted := s.now()
	if err := s.store.Create(ctx, jobID, submitted); err != nil {
		s.deduper.Unrecord(ctx, jobID)
		return "", false, fmt.Errorf("create job %s: %w", jobID, err)
	}

	job := model.Job{
		ID:          jobID,
		Sentences:   req.Sentences,
		Team:        s.teamFor(req),
		Reference:   s.referenceFor(req),
		SubmittedAt: submitted,
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		// Let the client retry the same id once there is room.
		s.deduper.Unrecord(ctx, jobID)
		_ = s.store.Delete(ctx, jobID)
		return "", false, fmt.Errorf("enqueue job %s: %w", jobID, err)
	}

	metrics.RecordJobSubmitted()
	metrics.UpdateJobsStored(s.store.Count(ctx))
	s.logger.Debug(ctx, "job queued", logger.String("job_id", jobID), logger.Int("sentences", len(req.Sentences)))
	return jobID, false, nil
}

// Job returns the stored state of a job.
func (s *Service) Job(ctx context.Context, id string) (repository.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return repository.Record{}, ErrNotStarted
	}
	return s.store.Get(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"teamSize":    len(s.team.Members),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["dedupeEntries"] = s.deduper.Size()
		stats["jobsStored"] = s.store.Count(ctx)

		byStatus := make(map[string]int)
		for status, n := range s.store.CountByStatus(ctx) {
			byStatus[string(status)] = n
		}
		stats["jobs"] = byStatus

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateJobsStored(s.store.Count(ctx))
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

func (s *Service) validate(req Request) error {
	if s.maxSentences > 0 && len(req.Sentences) > s.maxSentences {
		return fmt.Errorf("%w: %d > %d", ErrTooManySentences, len(req.Sentences), s.maxSentences)
	}
	for i, sen := range req.Sentences {
		if sen.ID < 0 {
			return fmt.Errorf("%w: sentence %d has id %d", ErrInvalidSentenceID, i, sen.ID)
		}
	}
	return nil
}

func (s *Service) teamFor(req Request) model.Team {
	if req.Team != nil {
		return *req.Team
	}
	return s.team
}

func (s *Service) referenceFor(req Request) time.Time {
	if req.Reference != nil && !req.Reference.IsZero() {
		return *req.Reference
	}
	return s.now().In(s.loc)
}

func (s *Service) run(ctx context.Context, sentences []model.Sentence, team model.Team, ref time.Time) (pipeline.Result, error) {
	start := time.Now()
	p := pipeline.New(
		pipeline.WithReference(ref),
		pipeline.WithLogger(s.logger.Named("pipeline")),
		pipeline.WithStageObserver(func(stage string, took time.Duration) {
			metrics.RecordStageDuration(stage, float64(took.Microseconds())/1000)
		}),
	)

	res, err := p.Run(ctx, sentences, team)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordPipelineRun("error", elapsed)
		metrics.RecordErrorByComponent("pipeline", "run")
		return pipeline.Result{}, err
	}

	outcome := "ok"
	if res.HasCycles {
		outcome = "cyclic"
	}
	metrics.RecordPipelineRun(outcome, elapsed)
	metrics.RecordExtraction(len(sentences), len(res.Tasks))
	if res.HasCycles {
		metrics.RecordDependencyCycle()
	}
	for _, a := range res.Assignments {
		metrics.RecordAssignment(string(a.Method))
	}
	metrics.RecordValidationFlags("unassigned", len(res.Validation.Unassigned))
	metrics.RecordValidationFlags("low_confidence", len(res.Validation.LowConfidence))
	metrics.RecordValidationFlags("conflict", len(res.Validation.Conflicts))
	return res, nil
}
