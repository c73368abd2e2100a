package scoring

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the composite score weights. Negative values are ignored
// individually so a partial override keeps the remaining defaults.
func WithWeights(recency, popularity, trending, diversity float64) Option {
	return func(s *Scorer) {
		if recency >= 0 {
			s.recencyWeight = recency
		}
		if popularity >= 0 {
			s.popularityWeight = popularity
		}
		if trending >= 0 {
			s.trendingWeight = trending
		}
		if diversity >= 0 {
			s.diversityWeight = diversity
		}
	}
}

// WithRecencyScale sets the e-folding time of the freshness decay, in days.
func WithRecencyScale(days float64) Option {
	return func(s *Scorer) {
		if days > 0 {
			s.recencyScaleDays = days
		}
	}
}

// WithDiversityBonus sets the multiplier applied to the first car of a make.
func WithDiversityBonus(bonus float64) Option {
	return func(s *Scorer) {
		if bonus >= 1 {
			s.diversityBonus = bonus
		}
	}
}

// WithTrendingFlagThresholds sets the minimum recent views and trending
// sub-score required for the isTrending flag.
func WithTrendingFlagThresholds(minRecent int, threshold float64) Option {
	return func(s *Scorer) {
		if minRecent > 0 {
			s.trendingMinRecent = minRecent
		}
		if threshold > 0 {
			s.trendingThreshold = threshold
		}
	}
}
