// Package scoring computes composite discovery scores for eligible cars.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/revline/explore/internal/domain/engagement"
	"github.com/revline/explore/internal/domain/model"
)

// Default scoring configuration constants. The weights reflect product
// intent: popularity dominant, recency secondary, trending and diversity
// minor tie-breakers.
const (
	defaultRecencyWeight    = 0.3
	defaultPopularityWeight = 0.4
	defaultTrendingWeight   = 0.2
	defaultDiversityWeight  = 0.1

	// defaultRecencyScaleDays is the e-folding time of the freshness decay.
	defaultRecencyScaleDays = 30.0

	// defaultDiversityBonus applies to the first car of a make in a pass.
	defaultDiversityBonus = 1.5

	// Thresholds for the independent isTrending flag.
	defaultTrendingMinRecent = 5
	defaultTrendingThreshold = 0.3

	hoursPerDay = 24
)

// Result carries the computed signals for one candidate.
type Result struct {
	Score      float64
	IsTrending bool
}

// Scorer computes a scalar score and trending flag per candidate. It is a
// pure function of its inputs: no I/O, no failure modes. The division
// guards live in engagement.Stats (maxima floored at 1).
type Scorer struct {
	recencyWeight    float64
	popularityWeight float64
	trendingWeight   float64
	diversityWeight  float64
	recencyScaleDays float64
	diversityBonus   float64
	trendingMinRecent int
	trendingThreshold float64
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		recencyWeight:     defaultRecencyWeight,
		popularityWeight:  defaultPopularityWeight,
		trendingWeight:    defaultTrendingWeight,
		diversityWeight:   defaultDiversityWeight,
		recencyScaleDays:  defaultRecencyScaleDays,
		diversityBonus:    defaultDiversityBonus,
		trendingMinRecent: defaultTrendingMinRecent,
		trendingThreshold: defaultTrendingThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the composite score for one candidate.
//
// Sub-scores:
//   - recency    = exp(-daysSinceCreated / scale)
//   - popularity = ln(1+v) / ln(1+maxV), 0 when v == 0
//   - trending   = (r/v) * recency * (r/maxR), 0 when v == 0
//   - diversity  = bonus for the first occurrence of a make in this pass
//
// composite = 0.3*recency + 0.4*popularity + 0.2*trending + 0.1*(bonus-1)
// with the default weights. The trending flag is an independent signal for
// the UI, not an extra score input.
//
// The diversity bonus depends on iteration order over the candidate set;
// callers must score candidates in the stable order the eligibility filter
// produced, with one MakeTracker per pass.
func (s *Scorer) Score(c model.Candidate, st engagement.Stats, now time.Time, seen *MakeTracker) Result {
	total, recent := st.Views(c.Car.ID)

	rec := s.recency(c.Car, now)

	var pop, trend float64
	if total > 0 {
		pop = math.Log1p(float64(total)) / math.Log1p(float64(st.MaxAllTime))
		ratio := float64(recent) / float64(total)
		trend = ratio * rec * (float64(recent) / float64(st.MaxRecent))
	}

	bonus := 1.0
	if !seen.SeenAndRecord(c.Car.Make) {
		bonus = s.diversityBonus
	}

	score := s.recencyWeight*rec +
		s.popularityWeight*pop +
		s.trendingWeight*trend +
		s.diversityWeight*(bonus-1)

	return Result{
		Score:      score,
		IsTrending: recent >= s.trendingMinRecent && trend > s.trendingThreshold,
	}
}

// recency decays exponentially with age. CreatedAt is the owner-facing
// field; a zero value falls back to the record's own creation timestamp.
func (s *Scorer) recency(car model.Car, now time.Time) float64 {
	created := car.CreatedAt
	if created.IsZero() {
		created = car.AddedAt
	}
	days := now.Sub(created).Hours() / hoursPerDay
	return math.Exp(-days / s.recencyScaleDays)
}

// MakeTracker records makes already encountered during a single ranking
// pass. It is scoped to one request; sharing it across requests would leak
// the anti-repetition state between callers.
type MakeTracker struct {
	seen map[string]struct{}
}

// NewMakeTracker creates an empty tracker for one scoring pass.
func NewMakeTracker() *MakeTracker {
	return &MakeTracker{seen: make(map[string]struct{})}
}

// SeenAndRecord checks whether a make was already encountered in this pass
// and records it if not. Returns true if the make was already seen.
// Comparison is case-insensitive.
func (t *MakeTracker) SeenAndRecord(mk string) bool {
	key := strings.ToLower(mk)
	if _, ok := t.seen[key]; ok {
		return true
	}
	t.seen[key] = struct{}{}
	return false
}
