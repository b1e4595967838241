package service

import (
	"time"

	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the job id deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxJobResults caps the number of finished jobs kept.
func WithMaxJobResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxJobResults = n
		}
	}
}

// WithMaxSentences caps sentences per request. Zero disables the cap.
func WithMaxSentences(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSentences = n
		}
	}
}

// WithTeam sets the roster used when a request carries none.
func WithTeam(team model.Team) Option {
	return func(s *Service) { s.team = team }
}

// WithLocation sets the zone the default reference time is expressed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
