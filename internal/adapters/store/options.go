package store

import (
	"time"

	"github.com/revline/explore/internal/domain/model"
)

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithCars seeds the car collection.
func WithCars(cars []model.Car) MemOption {
	return func(s *MemStore) {
		s.cars = append(s.cars, cars...)
	}
}

// WithOwners seeds the user collection.
func WithOwners(owners []model.Owner) MemOption {
	return func(s *MemStore) {
		s.owners = append(s.owners, owners...)
	}
}

// WithEvents seeds the analytics event log.
func WithEvents(events []model.AnalyticsEvent) MemOption {
	return func(s *MemStore) {
		s.events = append(s.events, events...)
	}
}

// WithClock overrides the timestamp source for appended records.
func WithClock(now func() time.Time) MemOption {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}
