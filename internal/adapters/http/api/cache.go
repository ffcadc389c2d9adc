package api

import (
	"context"
	"net/http"
)

// CacheDependencies defines the interface for cache administration.
type CacheDependencies interface {
	Invalidate(ctx context.Context)
}

// CacheHandler handles cache administration requests.
type CacheHandler struct {
	deps CacheDependencies
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(deps CacheDependencies) *CacheHandler {
	return &CacheHandler{deps: deps}
}

type invalidateResponse struct {
	Status string `json:"status"`
}

// HandleInvalidate handles POST /admin/cache/invalidate requests.
func (h *CacheHandler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, ErrMethodNotAllowed)
		return
	}
	h.deps.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, invalidateResponse{Status: "invalidated"})
}
