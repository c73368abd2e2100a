package feed

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/revline/explore/internal/domain/eligibility"
	"github.com/revline/explore/internal/domain/model"
)

// MakeAll is the sentinel value that disables the make filter.
const MakeAll = "all"

// hpPattern extracts the first integer run from the free-text horsepower
// field ("326 hp" -> 326).
var hpPattern = regexp.MustCompile(`\d+`)

// Criteria are the attribute filters applied to the explore feed. Zero
// values disable the corresponding bound; active filters combine with
// logical AND.
type Criteria struct {
	Make    string // case-insensitive equality; empty or "all" disables
	MinYear int
	MaxYear int
	MinHp   int
	MaxHp   int
}

// matches reports whether a car passes every active filter. Horsepower
// bounds compare against the parsed PowerHp value, so an unparseable field
// counts as zero and fails any positive minimum.
func (f Criteria) matches(c model.Car) bool {
	if f.Make != "" && !strings.EqualFold(f.Make, MakeAll) && !strings.EqualFold(f.Make, c.Make) {
		return false
	}
	if f.MinYear > 0 && c.Year < f.MinYear {
		return false
	}
	if f.MaxYear > 0 && c.Year > f.MaxYear {
		return false
	}
	if f.MinHp > 0 || f.MaxHp > 0 {
		hp := ParseHp(c.PowerHp)
		if f.MinHp > 0 && hp < f.MinHp {
			return false
		}
		if f.MaxHp > 0 && hp > f.MaxHp {
			return false
		}
	}
	return true
}

// Filtered returns eligible candidates passing crit, in scan order,
// truncated to limit.
func Filtered(cars []model.Car, owners []model.Owner, crit Criteria, limit int) Matches {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	out := make([]model.Candidate, 0, limit)
	matched := 0
	for _, c := range eligibility.Filter(cars, owners) {
		if !crit.matches(c.Car) {
			continue
		}
		matched++
		if len(out) < limit {
			out = append(out, c)
		}
	}
	return Matches{Cars: out, HasMore: matched > limit}
}

// ParseHp extracts horsepower from a free-text field. Values with no
// parseable integer are treated as zero, not as errors.
func ParseHp(s string) int {
	m := hpPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
