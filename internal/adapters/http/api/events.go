// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/revline/explore/internal/domain/dedupe"
	"github.com/revline/explore/internal/domain/model"
	"github.com/revline/explore/pkg/metrics"
)

// EventDependencies defines the interface for view-event ingestion.
type EventDependencies interface {
	dedupe.Deduper
	RecordView(ctx context.Context, e model.AnalyticsEvent) bool
}

// EventsHandler handles view-event submissions.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		metrics.RecordViewEventDuplicate()
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	ts, _ := time.Parse(time.RFC3339, req.TS) // validated above
	event := model.AnalyticsEvent{
		ID:        req.EventID,
		Type:      req.Type,
		CarID:     req.CarID,
		CreatedAt: ts,
	}

	if ok := h.deps.RecordView(r.Context(), event); !ok {
		// Roll back the "seen" status since enqueue failed.
		h.deps.Unrecord(r.Context(), req.EventID)
		metrics.RecordViewEventDropped()
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
