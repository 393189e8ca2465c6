package entities

import (
	"time"

	"github.com/google/uuid"
)

type MealPlan struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FamilyID    *uuid.UUID `gorm:"index" json:"family_id,omitempty"`
	OwnerUserID *uuid.UUID `gorm:"index" json:"owner_user_id,omitempty"`
	Name        string     `json:"name"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`

	Slots     []*MealPlanSlot `gorm:"foreignKey:MealPlanID"`
	OwnerUser *User           `gorm:"foreignKey:OwnerUserID"`
	Timestamp
}

// MealPlanSlot schedules one meal on one day (breakfast/lunch/dinner/snack).
// Servings × the meal's Portions gives the ingredient multiplier.
type MealPlanSlot struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MealPlanID uuid.UUID `gorm:"index" json:"meal_plan_id"`
	MealID     uuid.UUID `gorm:"index" json:"meal_id"`
	Day        time.Time `json:"day"`
	SlotType   string    `json:"slot_type"` // Breakfast, Lunch, Dinner, Snack
	Servings   int       `json:"servings"`

	MealPlan *MealPlan `gorm:"foreignKey:MealPlanID"`
	Meal     *Meal     `gorm:"foreignKey:MealID"`
	Timestamp
}

type Meal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerUserID *uuid.UUID `gorm:"index" json:"owner_user_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Portions    int        `json:"portions"`
	ImageURL    string     `json:"image_url,omitempty"`

	Ingredients []*MealIngredient `gorm:"foreignKey:MealID"`
	Timestamp
}

// MealIngredient is a free-text ingredient line ("chicken breast", "2 cups").
type MealIngredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MealID     uuid.UUID `gorm:"index" json:"meal_id"`
	Name       string    `json:"name"`
	AmountText string    `json:"amount_text,omitempty"`

	Meal *Meal `gorm:"foreignKey:MealID"`
	Timestamp
}
