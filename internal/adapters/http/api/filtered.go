// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/revline/explore/internal/domain/feed"
	"github.com/revline/explore/internal/domain/types"
)

// FilteredDependencies defines the interface for attribute-filtered retrieval.
type FilteredDependencies interface {
	FilteredExplore(ctx context.Context, crit feed.Criteria, limit int) (types.FeedPage, error)
}

// FilteredHandler handles attribute-filtered explore requests.
type FilteredHandler struct {
	deps     FilteredDependencies
	maxLimit int
}

// NewFilteredHandler creates a new filtered-feed handler.
func NewFilteredHandler(deps FilteredDependencies, maxLimit int) *FilteredHandler {
	return &FilteredHandler{deps: deps, maxLimit: maxLimit}
}

// HandleFiltered handles
// GET /explore/filtered?make=...&min_year=&max_year=&min_hp=&max_hp=&limit=N.
func (h *FilteredHandler) HandleFiltered(w http.ResponseWriter, r *http.Request) {
	const op = "api.filtered_explore"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	crit := feed.Criteria{Make: r.URL.Query().Get("make")}
	for _, b := range []struct {
		key string
		dst *int
	}{
		{"min_year", &crit.MinYear},
		{"max_year", &crit.MaxYear},
		{"min_hp", &crit.MinHp},
		{"max_hp", &crit.MaxHp},
	} {
		v, err := parseOptionalInt(r, b.key)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		*b.dst = v
	}

	page, err := h.deps.FilteredExplore(r.Context(), crit, limit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "data_source_unavailable", NewKind(op, ErrUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, page)
}
