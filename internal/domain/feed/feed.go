// Package feed assembles explore pages from raw collection scans.
//
// Every retrieval mode is a pure function of the full Car, Owner and
// AnalyticsEvent scans passed in. Rankings are recomputed per request;
// there is no persisted index or cache, so pages are not guaranteed
// consistent under concurrent writes. That recompute contract is
// deliberate and matches the engine's eventual-consistency trade-off.
package feed

import (
	"sort"
	"time"

	"github.com/revline/explore/internal/domain/eligibility"
	"github.com/revline/explore/internal/domain/engagement"
	"github.com/revline/explore/internal/domain/model"
	"github.com/revline/explore/internal/domain/scoring"
)

// Default page sizes per retrieval mode.
const (
	DefaultPageSize     = 20
	DefaultTrendingSize = 10

	// trendingOverfetch widens the raw view leaderboard before the
	// eligibility gate is re-applied, since the top-viewed cars are not yet
	// known to be premium-eligible.
	trendingOverfetch = 2
)

// Page is one slice of the ranked explore feed.
type Page struct {
	Cars []model.ScoredCar

	// NextCursor is the ID of the last returned car, or empty when the
	// page came back short of the limit.
	NextCursor string
	HasMore    bool

	// Eligible counts the candidates that passed the publish and role
	// gates, before pagination.
	Eligible int
}

// Ranked scores every eligible candidate and returns the page at cursor.
//
// Candidates are scored in eligibility-filter order, then sorted descending
// by composite score. The sort is stable, so equal scores keep their scan
// order; no secondary key is imposed. The cursor names the last car of the
// previous page. An unknown or stale cursor silently restarts from the top.
func Ranked(cars []model.Car, owners []model.Owner, events []model.AnalyticsEvent, scorer *scoring.Scorer, now time.Time, limit int, cursor string) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	cands := eligibility.Filter(cars, owners)
	stats := engagement.Aggregate(events, now)
	seen := scoring.NewMakeTracker()

	scored := make([]model.ScoredCar, 0, len(cands))
	for _, c := range cands {
		r := scorer.Score(c, stats, now, seen)
		scored = append(scored, model.ScoredCar{
			Car:        c.Car,
			Owner:      c.Owner,
			Score:      r.Score,
			IsTrending: r.IsTrending,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	start := 0
	if cursor != "" {
		for i := range scored {
			if scored[i].Car.ID == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(scored) {
		end = len(scored)
	}

	page := Page{
		Cars:     scored[start:end],
		HasMore:  end < len(scored),
		Eligible: len(cands),
	}
	if len(page.Cars) == limit {
		page.NextCursor = page.Cars[len(page.Cars)-1].Car.ID
	}
	return page
}
