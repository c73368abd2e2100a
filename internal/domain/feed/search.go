package feed

import (
	"strconv"
	"strings"

	"github.com/revline/explore/internal/domain/eligibility"
	"github.com/revline/explore/internal/domain/model"
)

// Matches is an unscored, unranked explore result.
type Matches struct {
	Cars    []model.Candidate
	HasMore bool
}

// Search returns eligible candidates whose make, model, year or owner
// username contains query, case-insensitively. Results keep scan order and
// truncate to limit; no scores or trending flags are attached.
func Search(cars []model.Car, owners []model.Owner, query string, limit int) Matches {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Candidate, 0, limit)
	matched := 0
	for _, c := range eligibility.Filter(cars, owners) {
		if !matchesQuery(c, q) {
			continue
		}
		matched++
		if len(out) < limit {
			out = append(out, c)
		}
	}
	return Matches{Cars: out, HasMore: matched > limit}
}

func matchesQuery(c model.Candidate, q string) bool {
	return strings.Contains(strings.ToLower(c.Car.Make), q) ||
		strings.Contains(strings.ToLower(c.Car.Model), q) ||
		strings.Contains(strconv.Itoa(c.Car.Year), q) ||
		strings.Contains(strings.ToLower(c.Owner.Username), q)
}
