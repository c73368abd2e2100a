// Package identity resolves car owner references against user records.
package identity

import (
	"strings"

	"github.com/revline/explore/internal/domain/model"
)

// Separator splits the issuer and subject segments of a token identifier.
const Separator = "|"

// OwnerIndex looks up owners by either their full token identifier
// ("issuer|subject") or the bare subject segment. Car records reference
// owners in both forms, so each owner is keyed under both representations
// and treated as equivalent under either.
type OwnerIndex struct {
	byKey map[string]model.Owner
}

// NewOwnerIndex builds the dual-key index over a full owner scan.
func NewOwnerIndex(owners []model.Owner) *OwnerIndex {
	idx := &OwnerIndex{byKey: make(map[string]model.Owner, len(owners)*2)}
	for _, o := range owners {
		if o.TokenIdentifier == "" {
			continue
		}
		idx.byKey[o.TokenIdentifier] = o
		if i := strings.Index(o.TokenIdentifier, Separator); i >= 0 {
			idx.byKey[o.TokenIdentifier[i+1:]] = o
		}
	}
	return idx
}

// Resolve returns the owner a car's user reference points at.
// The second return is false when the reference matches neither key form.
func (x *OwnerIndex) Resolve(userID string) (model.Owner, bool) {
	o, ok := x.byKey[userID]
	return o, ok
}
