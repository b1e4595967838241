package api

import (
	"net/http"

	service "github.com/okian/meetmind/internal/app"
	"github.com/okian/meetmind/pkg/logger"
)

type ackResponse struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// JobsHandler handles asynchronous job requests.
type JobsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps Dependencies, l logger.Logger) *JobsHandler {
	return &JobsHandler{deps: deps, logger: l}
}

// HandleSubmit handles POST /jobs requests.
func (h *JobsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_job"
	var req service.Request
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	id, dup, err := h.deps.Submit(r.Context(), req)
	if err != nil {
		if kind := classify(err); kind == ErrBackpressure {
			h.logger.Warn(r.Context(), "job rejected", logger.Error(err))
		} else if kind == ErrInternal {
			h.logger.Error(r.Context(), "job submission failed", logger.Error(err))
		}
		respondError(w, op, err)
		return
	}
	if dup {
		writeJSON(w, http.StatusOK, ackResponse{JobID: id, Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{JobID: id, Status: "accepted"})
}

// HandleGetJob handles GET /jobs/{id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	id := r.PathValue("id")
	if id == "" {
		respondError(w, op, NewKind(op, ErrBadRequest))
		return
	}
	rec, err := h.deps.Job(r.Context(), id)
	if err != nil {
		respondError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
