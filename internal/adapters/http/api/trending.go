// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/revline/explore/internal/domain/types"
)

// TrendingDependencies defines the interface for the trending leaderboard.
type TrendingDependencies interface {
	TrendingCars(ctx context.Context, limit int) (types.TrendingResult, error)
}

// TrendingHandler handles trending leaderboard requests.
type TrendingHandler struct {
	deps     TrendingDependencies
	maxLimit int
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(deps TrendingDependencies, maxLimit int) *TrendingHandler {
	return &TrendingHandler{deps: deps, maxLimit: maxLimit}
}

// HandleTrending handles GET /explore/trending?limit=N requests.
func (h *TrendingHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trending"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.TrendingCars(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "data_source_unavailable", NewKind(op, ErrUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
