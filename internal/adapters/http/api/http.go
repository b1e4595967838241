// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/meetmind/internal/adapters/mq/queue"
	"github.com/okian/meetmind/internal/adapters/repository"
	service "github.com/okian/meetmind/internal/app"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
	"github.com/okian/meetmind/pkg/logger"
)

const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Process(ctx context.Context, req service.Request) (pipeline.Result, error)
	Submit(ctx context.Context, req service.Request) (jobID string, duplicate bool, err error)
	Job(ctx context.Context, id string) (repository.Record, error)
	Team() model.Team
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	extractHandler *ExtractHandler
	jobsHandler    *JobsHandler
	teamHandler    *TeamHandler
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, l logger.Logger) *Server {
	if l == nil {
		l = logger.Nop()
	}
	l = l.Named("http")
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		extractHandler: NewExtractHandler(deps, l),
		jobsHandler:    NewJobsHandler(deps, l),
		teamHandler:    NewTeamHandler(deps),
		logger:         l,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", instrument("healthz", s.logger, s.healthHandler.HandleHealth))
	mux.HandleFunc("GET /stats", instrument("stats", s.logger, s.statsHandler.HandleStats))
	mux.HandleFunc("GET /team", instrument("team", s.logger, s.teamHandler.HandleGetTeam))
	mux.HandleFunc("POST /extract", instrument("extract", s.logger, s.extractHandler.HandleExtract))
	mux.HandleFunc("POST /jobs", instrument("jobs", s.logger, s.jobsHandler.HandleSubmit))
	mux.HandleFunc("GET /jobs/{id}", instrument("job", s.logger, s.jobsHandler.HandleGetJob))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeRequest reads a JSON request body into req.
func decodeRequest(w http.ResponseWriter, r *http.Request, req *service.Request) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return err
	}
	if req.Sentences == nil {
		return errors.New("missing sentences")
	}
	return nil
}

// classify maps an error to its API kind.
func classify(err error) error {
	var oe *OpError
	switch {
	case errors.As(err, &oe):
		return oe.Kind
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed), errors.Is(err, service.ErrNotStarted):
		return ErrBackpressure
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, service.ErrTooManySentences), errors.Is(err, service.ErrInvalidSentenceID):
		return ErrBadRequest
	default:
		return ErrInternal
	}
}

// respondError writes err with the status code of its kind.
func respondError(w http.ResponseWriter, op string, err error) {
	kind := classify(err)
	if _, ok := err.(*OpError); !ok { //nolint:errorlint // only wrap bare causes
		err = WrapKind(op, kind, err)
	}
	status := http.StatusInternalServerError
	switch kind {
	case ErrBadRequest:
		status = http.StatusBadRequest
	case ErrNotFound:
		status = http.StatusNotFound
	case ErrBackpressure:
		status = http.StatusTooManyRequests
	}
	writeError(w, status, errorCode(status), err)
}
