// Package store defines the collection-scan interfaces the explore engine
// reads from, plus an in-memory implementation used for local serving and
// tests. The hosted document store this mirrors exposes no server-side
// indexes to the engine; every read is a filtered full-collection scan.
package store

import (
	"context"

	"github.com/revline/explore/internal/domain/model"
)

// EntityStore provides full-collection scans of car and owner records.
// Both scans return point-in-time copies safe to retain past the call.
type EntityStore interface {
	ListCars(ctx context.Context) ([]model.Car, error)
	ListOwners(ctx context.Context) ([]model.Owner, error)
}

// EventStore provides the append-only analytics event log.
type EventStore interface {
	// ListEvents scans the full event log.
	ListEvents(ctx context.Context) ([]model.AnalyticsEvent, error)

	// AppendEvent adds one event to the log. Events are never mutated or
	// deleted afterwards.
	AppendEvent(ctx context.Context, e model.AnalyticsEvent) error
}
