package api

import (
	"context"
	"net/http"

	"github.com/okian/ufcradar/pkg/logger"
)

// FighterDependencies defines the interface for registry lookups.
type FighterDependencies interface {
	IsKnownFighter(ctx context.Context, name string) (bool, error)
}

// FightersHandler handles fighter registry requests.
type FightersHandler struct {
	deps   FighterDependencies
	logger logger.Logger
}

// NewFightersHandler creates a new fighters handler.
func NewFightersHandler(deps FighterDependencies, log logger.Logger) *FightersHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &FightersHandler{deps: deps, logger: log}
}

type knownResponse struct {
	Name  string `json:"name"`
	Known bool   `json:"known"`
}

// HandleKnown handles GET /fighters/known?name=NAME requests.
func (h *FightersHandler) HandleKnown(w http.ResponseWriter, r *http.Request) {
	const op = "api.fighters.known"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, ErrMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	known, err := h.deps.IsKnownFighter(r.Context(), name)
	if err != nil {
		writeServiceError(r.Context(), h.logger, op, w, err)
		return
	}
	writeJSON(w, http.StatusOK, knownResponse{Name: name, Known: known})
}
