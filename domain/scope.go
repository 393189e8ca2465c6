package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidScope = errors.New("scope must be exactly one of family or personal")

type scopeKind int

const (
	scopeFamily scopeKind = iota + 1
	scopePersonal
)

// Scope is the ownership boundary for pantry and grocery data: either a family
// or a single user's personal space, never both. Construct through FamilyScope
// or PersonalScope so the XOR invariant holds by construction.
type Scope struct {
	kind scopeKind
	id   uuid.UUID
}

func FamilyScope(familyID uuid.UUID) Scope {
	return Scope{kind: scopeFamily, id: familyID}
}

func PersonalScope(userID uuid.UUID) Scope {
	return Scope{kind: scopePersonal, id: userID}
}

// ScopeFromIDs builds a Scope from the two nullable columns persisted rows carry.
func ScopeFromIDs(familyID, ownerUserID *uuid.UUID) (Scope, error) {
	switch {
	case familyID != nil && ownerUserID == nil:
		return FamilyScope(*familyID), nil
	case familyID == nil && ownerUserID != nil:
		return PersonalScope(*ownerUserID), nil
	default:
		return Scope{}, ErrInvalidScope
	}
}

func (s Scope) IsFamily() bool   { return s.kind == scopeFamily }
func (s Scope) IsPersonal() bool { return s.kind == scopePersonal }

func (s Scope) FamilyID() (uuid.UUID, bool) {
	if s.kind != scopeFamily {
		return uuid.Nil, false
	}
	return s.id, true
}

func (s Scope) UserID() (uuid.UUID, bool) {
	if s.kind != scopePersonal {
		return uuid.Nil, false
	}
	return s.id, true
}

// IDs returns the (family_id, owner_user_id) column pair for persistence.
func (s Scope) IDs() (*uuid.UUID, *uuid.UUID) {
	id := s.id
	if s.kind == scopeFamily {
		return &id, nil
	}
	return nil, &id
}

// CanonicalAmount is a normalized quantity in one of the canonical units
// ("g", "ml" or "count").
type CanonicalAmount struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// PantryAvailability is the flexible aggregation result for one ingredient:
// the canonical total when any rows carried canonical data, plus the raw
// display total so callers can degrade instead of dropping the ingredient.
type PantryAvailability struct {
	CanonicalQuantity *float64 `json:"canonical_quantity,omitempty"`
	CanonicalUnit     *string  `json:"canonical_unit,omitempty"`
	DisplayQuantity   float64  `json:"display_quantity"`
	DisplayUnit       string   `json:"display_unit"`
}
