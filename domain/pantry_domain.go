package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessUpdatePantryItem = "pantry item updated successfully"
	MessageSuccessDeletePantryItem = "pantry item deleted successfully"
	MessageSuccessGetPantryItems   = "pantry items retrieved successfully"
	MessageFailedAddPantryItem     = "failed to add pantry item"
	MessageFailedUpdatePantryItem  = "failed to update pantry item"
	MessageFailedDeletePantryItem  = "failed to delete pantry item"
	MessageFailedGetPantryItems    = "failed to retrieve pantry items"

	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrInvalidPantryScope = errors.New("pantry item must belong to a family or a user, not both")
)

type (
	AddPantryItemRequest struct {
		IngredientName string   `json:"ingredient_name" validate:"required"`
		FamilyID       string   `json:"family_id" validate:"omitempty,uuid"`
		Quantity       *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit           string   `json:"unit" validate:"omitempty"`
		Category       string   `json:"category" validate:"omitempty"`
	}

	UpdatePantryItemRequest struct {
		Quantity *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit     string   `json:"unit" validate:"omitempty"`
		Category string   `json:"category" validate:"omitempty"`
	}

	PantryItemResponse struct {
		ID                string    `json:"id"`
		IngredientID      string    `json:"ingredient_id"`
		IngredientName    string    `json:"ingredient_name"`
		Quantity          *float64  `json:"quantity,omitempty"`
		Unit              string    `json:"unit,omitempty"`
		Category          string    `json:"category,omitempty"`
		CanonicalQuantity *float64  `json:"canonical_quantity,omitempty"`
		CanonicalUnit     *string   `json:"canonical_unit,omitempty"`
		CreatedAt         time.Time `json:"created_at"`
	}
)
