// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/revline/explore/internal/domain/types"
)

// ExploreDependencies defines the interface for ranked feed retrieval.
type ExploreDependencies interface {
	ExploreFeed(ctx context.Context, limit int, cursor string) (types.FeedPage, error)
}

// ExploreHandler handles ranked explore feed requests.
type ExploreHandler struct {
	deps     ExploreDependencies
	maxLimit int
}

// NewExploreHandler creates a new explore handler.
func NewExploreHandler(deps ExploreDependencies, maxLimit int) *ExploreHandler {
	return &ExploreHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetExplore handles GET /explore?limit=N&cursor=ID requests.
func (h *ExploreHandler) HandleGetExplore(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_explore"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	cursor := r.URL.Query().Get("cursor")

	page, err := h.deps.ExploreFeed(r.Context(), limit, cursor)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "data_source_unavailable", NewKind(op, ErrUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, page)
}
