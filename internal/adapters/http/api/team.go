package api

import (
	"net/http"

	"github.com/okian/meetmind/internal/domain/model"
)

type teamResponse struct {
	Count   int                `json:"count"`
	Members []model.TeamMember `json:"members"`
}

// TeamHandler exposes the default roster.
type TeamHandler struct {
	deps Dependencies
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps Dependencies) *TeamHandler {
	return &TeamHandler{deps: deps}
}

// HandleGetTeam handles GET /team requests.
func (h *TeamHandler) HandleGetTeam(w http.ResponseWriter, _ *http.Request) {
	members := h.deps.Team().Members
	if members == nil {
		members = []model.TeamMember{}
	}
	writeJSON(w, http.StatusOK, teamResponse{Count: len(members), Members: members})
}
