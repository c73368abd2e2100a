// Package eligibility gates which cars may appear on public discovery surfaces.
package eligibility

import (
	"github.com/revline/explore/internal/domain/identity"
	"github.com/revline/explore/internal/domain/model"
)

// EligibleRole reports whether an owner tier grants public visibility.
// Free-tier cars stay invisible on explore regardless of publish state.
func EligibleRole(role string) bool {
	return role == model.RolePremium || role == model.RoleAdmin
}

// Filter reduces full car and owner scans to the explore candidate set:
// published cars whose resolved owner holds an eligible tier. Cars with no
// resolvable owner are dropped without error. Output preserves car scan
// order; downstream diversity scoring depends on that stability.
func Filter(cars []model.Car, owners []model.Owner) []model.Candidate {
	idx := identity.NewOwnerIndex(owners)
	out := make([]model.Candidate, 0, len(cars))
	for _, c := range cars {
		if !c.IsPublished {
			continue
		}
		o, ok := idx.Resolve(c.UserID)
		if !ok || !EligibleRole(o.Role) {
			continue
		}
		out = append(out, model.Candidate{Car: c, Owner: o})
	}
	return out
}
