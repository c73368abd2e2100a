package feed

import (
	"sort"
	"time"

	"github.com/revline/explore/internal/domain/eligibility"
	"github.com/revline/explore/internal/domain/engagement"
	"github.com/revline/explore/internal/domain/identity"
	"github.com/revline/explore/internal/domain/model"
)

// Trending ranks cars by car_view volume inside the trailing engagement
// window and returns the top limit eligible entries.
//
// The raw view leaderboard is built before eligibility is known, so it
// over-fetches 2x limit entries and re-applies the eligibility gate while
// walking it. A leaderboard entry whose car no longer exists is skipped
// silently.
func Trending(cars []model.Car, owners []model.Owner, events []model.AnalyticsEvent, now time.Time, limit int) []model.TrendingCar {
	if limit <= 0 {
		limit = DefaultTrendingSize
	}

	counts := engagement.RecentCounts(events, now)

	type entry struct {
		carID string
		views int
	}
	board := make([]entry, 0, len(counts))
	for id, n := range counts {
		board = append(board, entry{carID: id, views: n})
	}
	// Secondary key on car ID only pins down map iteration order; the
	// contract is views-descending.
	sort.Slice(board, func(i, j int) bool {
		if board[i].views != board[j].views {
			return board[i].views > board[j].views
		}
		return board[i].carID < board[j].carID
	})
	if max := limit * trendingOverfetch; len(board) > max {
		board = board[:max]
	}

	byID := make(map[string]model.Car, len(cars))
	for _, c := range cars {
		byID[c.ID] = c
	}
	idx := identity.NewOwnerIndex(owners)

	out := make([]model.TrendingCar, 0, limit)
	for _, e := range board {
		car, ok := byID[e.carID]
		if !ok {
			continue // deleted since the views were logged
		}
		if !car.IsPublished {
			continue
		}
		o, ok := idx.Resolve(car.UserID)
		if !ok || !eligibility.EligibleRole(o.Role) {
			continue
		}
		out = append(out, model.TrendingCar{Car: car, Owner: o, ViewCount: e.views})
		if len(out) == limit {
			break
		}
	}
	return out
}
