// Package app provides the core service that implements the dependencies
// required by the HTTP API: the four explore retrieval modes plus the
// view-event ingestion pipeline.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/revline/explore/internal/adapters/mq/queue"
	workerpool "github.com/revline/explore/internal/adapters/mq/worker"
	"github.com/revline/explore/internal/adapters/store"
	"github.com/revline/explore/internal/domain/dedupe"
	"github.com/revline/explore/internal/domain/feed"
	"github.com/revline/explore/internal/domain/model"
	"github.com/revline/explore/internal/domain/scoring"
	"github.com/revline/explore/internal/domain/types"
	"github.com/revline/explore/pkg/logger"
	"github.com/revline/explore/pkg/metrics"
)

// Service implements the API dependencies for the explore engine.
//
// The engine itself is stateless and read-only: every retrieval call scans
// the stores, computes in memory, and returns. The only mutable pieces are
// the ingestion queue, its workers, and the idempotency cache.
type Service struct {
	mu sync.RWMutex

	// Core components
	entities   store.EntityStore
	events     store.EventStore
	scorer     *scoring.Scorer
	deduper    dedupe.Deduper
	viewQueue  queue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	scorerOpts  []scoring.Option

	// State
	started bool

	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEntityStore sets the car/owner collection source.
func WithEntityStore(s store.EntityStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.entities = s
		}
	}
}

// WithEventStore sets the analytics event log.
func WithEventStore(s store.EventStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.events = s
		}
	}
}

// WithWorkerCount sets the number of ingestion workers.
func WithWorkerCount(count int) Option {
	return func(svc *Service) {
		if count > 0 {
			svc.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the view-event queue.
func WithQueueSize(size int) Option {
	return func(svc *Service) {
		if size > 0 {
			svc.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the event idempotency cache.
func WithDedupeSize(size int) Option {
	return func(svc *Service) {
		if size > 0 {
			svc.dedupeSize = size
		}
	}
}

// WithScorerOptions forwards options to the ranking scorer.
func WithScorerOptions(opts ...scoring.Option) Option {
	return func(svc *Service) {
		svc.scorerOpts = append(svc.scorerOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithClock overrides the time source used as "now" for windowing and
// recency decay. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 4,
		queueSize:   100000,
		dedupeSize:  50000,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting explore service...")

	if s.entities == nil || s.events == nil {
		mem := store.NewMemStore()
		if s.entities == nil {
			s.entities = mem
		}
		if s.events == nil {
			s.events = mem
		}
		s.logger.Info(ctx, "using in-memory store")
	}

	s.scorer = scoring.New(s.scorerOpts...)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.viewQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.viewQueue, s.events)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "explore service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping explore service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if s.viewQueue != nil {
		_ = s.viewQueue.Close()
	}

	s.started = false
	s.logger.Info(ctx, "explore service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it
// if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	return s.deduper.SeenAndRecord(ctx, id)
}

// Unrecord removes an event ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the idempotency cache.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// RecordView submits a view event for asynchronous ingestion.
// Returns false on backpressure.
func (s *Service) RecordView(ctx context.Context, e model.AnalyticsEvent) bool {
	ok := s.viewQueue.Enqueue(ctx, e)
	if !ok {
		s.logger.Warn(ctx, "view event dropped",
			logger.String("eventID", e.ID),
			logger.String("carID", e.CarID),
		)
	}
	return ok
}

// ExploreFeed returns one page of the ranked discovery feed.
func (s *Service) ExploreFeed(ctx context.Context, limit int, cursor string) (types.FeedPage, error) {
	metrics.RecordFeedRequest("ranked")
	start := time.Now()

	cars, owners, err := s.scanEntities(ctx)
	if err != nil {
		return types.FeedPage{}, err
	}
	events, err := s.scanEvents(ctx)
	if err != nil {
		return types.FeedPage{}, err
	}

	page := feed.Ranked(cars, owners, events, s.scorer, s.now(), limit, cursor)
	metrics.RecordRankingDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateEligibleCandidates(page.Eligible)
	metrics.UpdateTotalCars(len(cars))
	metrics.UpdateTotalEvents(len(events))

	out := types.FeedPage{
		Cars:    make([]types.FeedCar, 0, len(page.Cars)),
		HasMore: page.HasMore,
	}
	for _, sc := range page.Cars {
		out.Cars = append(out.Cars, types.FeedCar{
			Car:        toCar(sc.Car),
			Owner:      toOwner(sc.Owner),
			Score:      sc.Score,
			IsTrending: sc.IsTrending,
		})
	}
	if page.NextCursor != "" {
		cur := page.NextCursor
		out.NextCursor = &cur
	}
	return out, nil
}

// SearchExplore returns eligible cars matching a substring query.
func (s *Service) SearchExplore(ctx context.Context, query string, limit int) (types.FeedPage, error) {
	metrics.RecordFeedRequest("search")

	cars, owners, err := s.scanEntities(ctx)
	if err != nil {
		return types.FeedPage{}, err
	}

	m := feed.Search(cars, owners, query, limit)
	return matchesToPage(m), nil
}

// FilteredExplore returns eligible cars passing the attribute filters.
func (s *Service) FilteredExplore(ctx context.Context, crit feed.Criteria, limit int) (types.FeedPage, error) {
	metrics.RecordFeedRequest("filtered")

	cars, owners, err := s.scanEntities(ctx)
	if err != nil {
		return types.FeedPage{}, err
	}

	m := feed.Filtered(cars, owners, crit, limit)
	return matchesToPage(m), nil
}

// TrendingCars returns the trailing-window view leaderboard.
func (s *Service) TrendingCars(ctx context.Context, limit int) (types.TrendingResult, error) {
	metrics.RecordFeedRequest("trending")

	cars, owners, err := s.scanEntities(ctx)
	if err != nil {
		return types.TrendingResult{}, err
	}
	events, err := s.scanEvents(ctx)
	if err != nil {
		return types.TrendingResult{}, err
	}

	trending := feed.Trending(cars, owners, events, s.now(), limit)
	out := types.TrendingResult{Cars: make([]types.FeedCar, 0, len(trending))}
	for _, tc := range trending {
		out.Cars = append(out.Cars, types.FeedCar{
			Car:       toCar(tc.Car),
			Owner:     toOwner(tc.Owner),
			ViewCount: tc.ViewCount,
		})
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		stats["queueLength"] = s.viewQueue.Len(context.Background())
		stats["dedupeEntries"] = s.deduper.Size()
	}

	return stats
}

// scanEntities awaits the car and owner scans sequentially with the
// request context; cancellation short-circuits before any scoring work.
func (s *Service) scanEntities(ctx context.Context) ([]model.Car, []model.Owner, error) {
	cars, err := s.entities.ListCars(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list cars: %w", err)
	}
	owners, err := s.entities.ListOwners(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list owners: %w", err)
	}
	return cars, owners, nil
}

func (s *Service) scanEvents(ctx context.Context) ([]model.AnalyticsEvent, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func matchesToPage(m feed.Matches) types.FeedPage {
	out := types.FeedPage{
		Cars:    make([]types.FeedCar, 0, len(m.Cars)),
		HasMore: m.HasMore,
	}
	for _, c := range m.Cars {
		out.Cars = append(out.Cars, types.FeedCar{
			Car:   toCar(c.Car),
			Owner: toOwner(c.Owner),
		})
	}
	return out
}

func toCar(c model.Car) types.Car {
	return types.Car{
		ID:         c.ID,
		Make:       c.Make,
		Model:      c.Model,
		Year:       c.Year,
		PowerHp:    c.PowerHp,
		Images:     c.Images,
		IsFeatured: c.IsFeatured,
	}
}

func toOwner(o model.Owner) types.Owner {
	return types.Owner{
		Name:       o.Name,
		Username:   o.Username,
		PictureURL: o.PictureURL,
	}
}
