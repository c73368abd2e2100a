// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/revline/explore/internal/domain/types"
)

// SearchDependencies defines the interface for explore search.
type SearchDependencies interface {
	SearchExplore(ctx context.Context, query string, limit int) (types.FeedPage, error)
}

// SearchHandler handles explore search requests.
type SearchHandler struct {
	deps     SearchDependencies
	maxLimit int
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies, maxLimit int) *SearchHandler {
	return &SearchHandler{deps: deps, maxLimit: maxLimit}
}

// HandleSearch handles GET /explore/search?q=...&limit=N requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_explore"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	page, err := h.deps.SearchExplore(r.Context(), query, limit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "data_source_unavailable", NewKind(op, ErrUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, page)
}
