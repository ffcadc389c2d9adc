package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/ufcradar/internal/app"
	"github.com/okian/ufcradar/pkg/logger"
)

// RadarDependencies defines the interface for radar queries.
type RadarDependencies interface {
	Radar(ctx context.Context, q service.Query) (service.Radar, error)
}

// RadarHandler handles radar requests.
type RadarHandler struct {
	deps   RadarDependencies
	logger logger.Logger
}

// NewRadarHandler creates a new radar handler.
func NewRadarHandler(deps RadarDependencies, log logger.Logger) *RadarHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &RadarHandler{deps: deps, logger: log}
}

// HandleGetRadar handles GET /ufc/radar/?fighter=NAME&last=N requests.
func (h *RadarHandler) HandleGetRadar(w http.ResponseWriter, r *http.Request) {
	const op = "api.radar"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, ErrMethodNotAllowed)
		return
	}
	if rest := strings.TrimPrefix(r.URL.Path, "/ufc/radar"); rest != "" && rest != "/" {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	q := service.Query{Fighter: query.Get("fighter")}
	if raw := strings.TrimSpace(query.Get("last")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("%w: last must be an integer", ErrBadRequest))
			return
		}
		q.Last = &n
	}

	res, err := h.deps.Radar(r.Context(), q)
	if err != nil {
		writeServiceError(r.Context(), h.logger, op, w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
