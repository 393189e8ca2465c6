package entities

import (
	"github.com/google/uuid"
)

type GroceryList struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FamilyID    *uuid.UUID `gorm:"index" json:"family_id,omitempty"`
	OwnerUserID *uuid.UUID `gorm:"index" json:"owner_user_id,omitempty"`
	Name        string     `json:"name"`
	MealPlanID  *uuid.UUID `gorm:"index" json:"meal_plan_id,omitempty"`

	Family    *Family            `gorm:"foreignKey:FamilyID"`
	Items     []*GroceryListItem `gorm:"foreignKey:GroceryListID"`
	OwnerUser *User              `gorm:"foreignKey:OwnerUserID"`
	Timestamp
}

type GroceryListItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GroceryListID uuid.UUID `gorm:"index" json:"grocery_list_id"`
	IngredientID  uuid.UUID `gorm:"index" json:"ingredient_id"`

	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Checked  bool     `json:"checked"`
	Note     string   `json:"note,omitempty"`

	IsPurchased             bool       `json:"is_purchased"`
	IsManual                bool       `json:"is_manual"`
	CanonicalQuantityNeeded *float64   `json:"canonical_quantity_needed,omitempty"`
	CanonicalUnit           *string    `json:"canonical_unit,omitempty"`
	SourceMealPlanID        *uuid.UUID `gorm:"index" json:"source_meal_plan_id,omitempty"`

	GroceryList *GroceryList `gorm:"foreignKey:GroceryListID"`
	Ingredient  *Ingredient  `gorm:"foreignKey:IngredientID"`
	Timestamp
}
