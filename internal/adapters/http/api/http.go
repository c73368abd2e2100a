// Package api declares HTTP contracts and route registration helpers for
// the explore service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/revline/explore/internal/domain/dedupe"
	"github.com/revline/explore/internal/domain/feed"
	"github.com/revline/explore/internal/domain/model"
	"github.com/revline/explore/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Read operations expose the four explore retrieval modes.
	ExploreFeed(ctx context.Context, limit int, cursor string) (types.FeedPage, error)
	SearchExplore(ctx context.Context, query string, limit int) (types.FeedPage, error)
	FilteredExplore(ctx context.Context, crit feed.Criteria, limit int) (types.FeedPage, error)
	TrendingCars(ctx context.Context, limit int) (types.TrendingResult, error)

	// RecordView pushes a view event for async ingestion.
	// Returns false on backpressure.
	RecordView(ctx context.Context, e model.AnalyticsEvent) bool
}

// Server wires HTTP routes for the explore API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	eventsHandler   *EventsHandler
	exploreHandler  *ExploreHandler
	searchHandler   *SearchHandler
	filteredHandler *FilteredHandler
	trendingHandler *TrendingHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit query parameter on every retrieval route.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		eventsHandler:   NewEventsHandler(deps),
		exploreHandler:  NewExploreHandler(deps, maxLimit),
		searchHandler:   NewSearchHandler(deps, maxLimit),
		filteredHandler: NewFilteredHandler(deps, maxLimit),
		trendingHandler: NewTrendingHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/explore", MetricsMiddleware(s.exploreHandler.HandleGetExplore, "explore"))
	mux.HandleFunc("/explore/search", MetricsMiddleware(s.searchHandler.HandleSearch, "explore_search"))
	mux.HandleFunc("/explore/filtered", MetricsMiddleware(s.filteredHandler.HandleFiltered, "explore_filtered"))
	mux.HandleFunc("/explore/trending", MetricsMiddleware(s.trendingHandler.HandleTrending, "explore_trending"))
}

// eventRequest mirrors the POST /events body.
type eventRequest struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	CarID   string `json:"car_id"`
	TS      string `json:"ts"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(e.Type) == "":
		return errors.New("missing type")
	case strings.TrimSpace(e.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := time.Parse(time.RFC3339, e.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// parseLimit reads the optional limit query parameter. Zero means "use the
// mode's default"; anything non-positive or above maxLimit is rejected.
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if maxLimit > 0 && n > maxLimit {
		return 0, fmt.Errorf("limit exceeds maximum of %d", maxLimit)
	}
	return n, nil
}

// parseOptionalInt reads an optional non-negative integer query parameter.
func parseOptionalInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}
