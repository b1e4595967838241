package api

import (
	"net/http"

	service "github.com/okian/meetmind/internal/app"
	"github.com/okian/meetmind/pkg/logger"
)

// ExtractHandler runs the pipeline inline.
type ExtractHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(deps Dependencies, l logger.Logger) *ExtractHandler {
	return &ExtractHandler{deps: deps, logger: l}
}

// HandleExtract handles POST /extract requests.
func (h *ExtractHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	const op = "api.extract"
	var req service.Request
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Process(r.Context(), req)
	if err != nil {
		if classify(err) == ErrInternal {
			h.logger.Error(r.Context(), "extraction failed", logger.Error(err))
		}
		respondError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
