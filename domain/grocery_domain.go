package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateGroceryList = "grocery list created successfully"
	MessageSuccessGetGroceryLists   = "grocery lists retrieved successfully"
	MessageSuccessAddGroceryItem    = "grocery item added successfully"
	MessageSuccessToggleGroceryItem = "grocery item updated successfully"
	MessageSuccessDeleteGroceryItem = "grocery item deleted successfully"
	MessageSuccessSyncGroceryList   = "grocery list synced with pantry"
	MessageSuccessRebuildList       = "grocery list rebuilt from meal plan"
	MessageSuccessMarkPurchased     = "grocery item marked as purchased"
	MessageSuccessShareGroceryList  = "grocery list shared successfully"

	MessageFailedCreateGroceryList = "failed to create grocery list"
	MessageFailedGetGroceryLists   = "failed to retrieve grocery lists"
	MessageFailedAddGroceryItem    = "failed to add grocery item"
	MessageFailedToggleGroceryItem = "failed to update grocery item"
	MessageFailedDeleteGroceryItem = "failed to delete grocery item"
	MessageFailedSyncGroceryList   = "failed to sync grocery list"
	MessageFailedRebuildList       = "failed to rebuild grocery list"
	MessageFailedMarkPurchased     = "failed to mark grocery item as purchased"
	MessageFailedShareGroceryList  = "failed to share grocery list"

	ErrGroceryListNotFound = errors.New("grocery list not found")
	ErrGroceryItemNotFound = errors.New("grocery item not found")
	ErrUnauthorizedAccess  = errors.New("unauthorized access")
)

type (
	CreateGroceryListRequest struct {
		Name       string `json:"name" validate:"required"`
		FamilyID   string `json:"family_id" validate:"omitempty,uuid"`
		MealPlanID string `json:"meal_plan_id" validate:"omitempty,uuid"`
	}

	AddGroceryItemRequest struct {
		IngredientName string   `json:"ingredient_name" validate:"required"`
		Quantity       *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit           string   `json:"unit" validate:"omitempty"`
		Note           string   `json:"note" validate:"omitempty"`
	}

	ShareGroceryListRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	GroceryItemResponse struct {
		ID                      string   `json:"id"`
		IngredientID            string   `json:"ingredient_id"`
		IngredientName          string   `json:"ingredient_name"`
		Quantity                *float64 `json:"quantity,omitempty"`
		Unit                    string   `json:"unit,omitempty"`
		Checked                 bool     `json:"checked"`
		Note                    string   `json:"note,omitempty"`
		IsPurchased             bool     `json:"is_purchased"`
		IsManual                bool     `json:"is_manual"`
		CanonicalQuantityNeeded *float64 `json:"canonical_quantity_needed,omitempty"`
		CanonicalUnit           *string  `json:"canonical_unit,omitempty"`
	}

	GroceryListResponse struct {
		ID         string                `json:"id"`
		Name       string                `json:"name"`
		FamilyID   *string               `json:"family_id,omitempty"`
		MealPlanID *string               `json:"meal_plan_id,omitempty"`
		Items      []GroceryItemResponse `json:"items"`
		UpdatedAt  time.Time             `json:"updated_at"`
	}

	// ItemSummary describes one line still left to buy after a sync.
	ItemSummary struct {
		IngredientID      string   `json:"ingredient_id"`
		IngredientName    string   `json:"ingredient_name"`
		Quantity          *float64 `json:"quantity,omitempty"`
		UnitCode          string   `json:"unit_code,omitempty"`
		CanonicalQuantity *float64 `json:"canonical_quantity,omitempty"`
		CanonicalUnit     *string  `json:"canonical_unit,omitempty"`
		Note              string   `json:"note,omitempty"`
		UnitMismatch      bool     `json:"unit_mismatch,omitempty"`
	}

	SyncResult struct {
		ItemsRemoved int                 `json:"items_removed"`
		ItemsUpdated int                 `json:"items_updated"`
		Remaining    []ItemSummary       `json:"remaining"`
		List         GroceryListResponse `json:"list"`
	}

	MarkPurchasedResponse struct {
		Item       GroceryItemResponse `json:"item"`
		PantryItem PantryItemResponse  `json:"pantry_item"`
	}
)
