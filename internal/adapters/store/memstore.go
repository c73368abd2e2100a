package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revline/explore/internal/domain/model"
)

// MemStore implements EntityStore and EventStore with in-process slices.
// Scans return copies in insertion order, which keeps the order-sensitive
// diversity pass deterministic in tests and local serving.
type MemStore struct {
	mu     sync.RWMutex
	cars   []model.Car
	owners []model.Owner
	events []model.AnalyticsEvent
	now    func() time.Time
}

// NewMemStore creates a MemStore, optionally pre-seeded via options.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListCars scans the full car collection.
func (s *MemStore) ListCars(ctx context.Context) ([]model.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Car, len(s.cars))
	copy(out, s.cars)
	return out, nil
}

// ListOwners scans the full user collection.
func (s *MemStore) ListOwners(ctx context.Context) ([]model.Owner, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Owner, len(s.owners))
	copy(out, s.owners)
	return out, nil
}

// ListEvents scans the full analytics event log.
func (s *MemStore) ListEvents(ctx context.Context) ([]model.AnalyticsEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AnalyticsEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

// AppendEvent adds one event to the log, assigning an ID and timestamp when
// the caller left them empty.
func (s *MemStore) AppendEvent(ctx context.Context, e model.AnalyticsEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// PutCar upserts a car record by ID, assigning an ID and record timestamp
// when empty. Used by seeding and tests; the explore engine itself never
// writes cars.
func (s *MemStore) PutCar(ctx context.Context, c model.Car) (model.Car, error) {
	if err := ctx.Err(); err != nil {
		return model.Car{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.AddedAt.IsZero() {
		c.AddedAt = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cars {
		if s.cars[i].ID == c.ID {
			s.cars[i] = c
			return c, nil
		}
	}
	s.cars = append(s.cars, c)
	return c, nil
}

// PutOwner upserts a user record by ID, assigning an ID when empty.
func (s *MemStore) PutOwner(ctx context.Context, o model.Owner) (model.Owner, error) {
	if err := ctx.Err(); err != nil {
		return model.Owner{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.owners {
		if s.owners[i].ID == o.ID {
			s.owners[i] = o
			return o, nil
		}
	}
	s.owners = append(s.owners, o)
	return o, nil
}

// Counts returns collection sizes for stats reporting.
func (s *MemStore) Counts(ctx context.Context) (cars, owners, events int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cars), len(s.owners), len(s.events)
}
