package domain

import (
	"errors"
)

var (
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessUpdateIngredient = "ingredient metadata updated successfully"
	MessageFailedGetIngredients    = "failed to retrieve ingredients"
	MessageFailedUpdateIngredient  = "failed to update ingredient metadata"

	ErrIngredientNotFound     = errors.New("ingredient not found")
	ErrInvalidCanonicalUnit   = errors.New("canonical unit does not match canonical unit type")
	ErrCanonicalUnitRequired  = errors.New("canonical unit is required when canonical unit type is set")
	ErrInvalidConversionValue = errors.New("density and average weight must be positive")

	// Normalization failures (spec error taxonomy).
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrMissingDensity   = errors.New("ingredient is missing density_g_per_ml for weight/volume conversion")
	ErrMissingAvgWeight = errors.New("ingredient is missing avg_weight_per_unit_g for weight/count conversion")
)

type (
	UpdateIngredientMetadataRequest struct {
		Category          string   `json:"category" validate:"omitempty"`
		CanonicalUnitType string   `json:"canonical_unit_type" validate:"omitempty,oneof=weight volume count"`
		CanonicalUnit     string   `json:"canonical_unit" validate:"omitempty"`
		AvgWeightPerUnitG *float64 `json:"avg_weight_per_unit_g" validate:"omitempty,gt=0"`
		DensityGPerML     *float64 `json:"density_g_per_ml" validate:"omitempty,gt=0"`
		PiecesPerPackage  *int     `json:"pieces_per_package" validate:"omitempty,gt=0"`
	}

	IngredientResponse struct {
		ID                string   `json:"id"`
		Name              string   `json:"name"`
		Category          string   `json:"category,omitempty"`
		CanonicalUnitType *string  `json:"canonical_unit_type,omitempty"`
		CanonicalUnit     *string  `json:"canonical_unit,omitempty"`
		AvgWeightPerUnitG *float64 `json:"avg_weight_per_unit_g,omitempty"`
		DensityGPerML     *float64 `json:"density_g_per_ml,omitempty"`
		PiecesPerPackage  *int     `json:"pieces_per_package,omitempty"`
	}
)
