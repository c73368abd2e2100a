// Package engagement reduces the analytics event log into per-car view
// statistics used for ranking.
package engagement

import (
	"time"

	"github.com/revline/explore/internal/domain/model"
)

// Window is the trailing period that counts as "recent" engagement.
const Window = 7 * 24 * time.Hour

// Stats holds per-car view tallies over the full log and the trailing window.
type Stats struct {
	AllTime map[string]int
	Recent  map[string]int

	// MaxAllTime and MaxRecent are floored at 1 so that a candidate set
	// with zero engagement still normalizes to zero instead of NaN.
	MaxAllTime int
	MaxRecent  int
}

// Views returns the all-time and recent view counts for a car.
func (s Stats) Views(carID string) (total, recent int) {
	return s.AllTime[carID], s.Recent[carID]
}

// Aggregate tallies car_view occurrences per car, all-time and over the
// trailing window ending at now (window start inclusive). Events of other
// types, or without a car reference, are ignored. Counts are plain
// occurrence tallies, not unique-visitor counts.
func Aggregate(events []model.AnalyticsEvent, now time.Time) Stats {
	st := Stats{
		AllTime:    make(map[string]int),
		Recent:     make(map[string]int),
		MaxAllTime: 1,
		MaxRecent:  1,
	}
	cutoff := now.Add(-Window)
	for _, e := range events {
		if e.Type != model.EventCarView || e.CarID == "" {
			continue
		}
		st.AllTime[e.CarID]++
		if st.AllTime[e.CarID] > st.MaxAllTime {
			st.MaxAllTime = st.AllTime[e.CarID]
		}
		if !e.CreatedAt.Before(cutoff) {
			st.Recent[e.CarID]++
			if st.Recent[e.CarID] > st.MaxRecent {
				st.MaxRecent = st.Recent[e.CarID]
			}
		}
	}
	return st
}

// RecentCounts tallies car_view occurrences inside the trailing window only.
// Used by the trending leaderboard, which ignores all-time history.
func RecentCounts(events []model.AnalyticsEvent, now time.Time) map[string]int {
	counts := make(map[string]int)
	cutoff := now.Add(-Window)
	for _, e := range events {
		if e.Type != model.EventCarView || e.CarID == "" {
			continue
		}
		if e.CreatedAt.Before(cutoff) {
			continue
		}
		counts[e.CarID]++
	}
	return counts
}
