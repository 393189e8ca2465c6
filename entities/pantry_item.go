package entities

import (
	"github.com/google/uuid"
)

// PantryItem is one stock record for an ingredient in a scope. Exactly one of
// FamilyID / OwnerUserID is set. Several rows may exist per (scope, ingredient);
// the aggregator sums them.
type PantryItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FamilyID     *uuid.UUID `gorm:"index" json:"family_id,omitempty"`
	OwnerUserID  *uuid.UUID `gorm:"index" json:"owner_user_id,omitempty"`
	IngredientID uuid.UUID  `gorm:"index" json:"ingredient_id"`

	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Category string   `json:"category,omitempty"`

	// Derived at write time when quantity, unit and ingredient metadata are all
	// available; cleared to null otherwise.
	CanonicalQuantity *float64 `json:"canonical_quantity,omitempty"`
	CanonicalUnit     *string  `json:"canonical_unit,omitempty"`

	Family     *Family     `gorm:"foreignKey:FamilyID"`
	OwnerUser  *User       `gorm:"foreignKey:OwnerUserID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Timestamp
}
