package entities

import (
	"github.com/google/uuid"
)

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"uniqueIndex" json:"name"`
	Category string    `json:"category,omitempty"`

	// Canonical-unit metadata. If CanonicalUnitType is set, CanonicalUnit must be too.
	CanonicalUnitType *string  `json:"canonical_unit_type,omitempty"` // weight, volume, count
	CanonicalUnit     *string  `json:"canonical_unit,omitempty"`      // g, ml, count
	AvgWeightPerUnitG *float64 `json:"avg_weight_per_unit_g,omitempty"`
	DensityGPerML     *float64 `json:"density_g_per_ml,omitempty"`
	PiecesPerPackage  *int     `json:"pieces_per_package,omitempty"`

	Timestamp
}
