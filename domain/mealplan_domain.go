package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateMealPlan  = "meal plan created successfully"
	MessageSuccessGetMealPlans    = "meal plans retrieved successfully"
	MessageSuccessCreateMeal      = "meal created successfully"
	MessageSuccessUploadMealImage = "meal image uploaded successfully"
	MessageFailedCreateMealPlan   = "failed to create meal plan"
	MessageFailedGetMealPlans     = "failed to retrieve meal plans"
	MessageFailedCreateMeal       = "failed to create meal"
	MessageFailedUploadMealImage  = "failed to upload meal image"

	ErrMealPlanNotFound = errors.New("meal plan not found")
	ErrMealNotFound     = errors.New("meal not found")
)

type (
	MealIngredientRequest struct {
		Name       string `json:"name" validate:"required"`
		AmountText string `json:"amount_text" validate:"omitempty"`
	}

	CreateMealRequest struct {
		Name        string                  `json:"name" validate:"required"`
		Description string                  `json:"description" validate:"omitempty"`
		Portions    int                     `json:"portions" validate:"omitempty,min=1"`
		Ingredients []MealIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	UploadMealImageRequest struct {
		MealID string                `json:"meal_id" form:"meal_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	MealPlanSlotRequest struct {
		MealID   string `json:"meal_id" validate:"required,uuid"`
		Day      string `json:"day" validate:"required"` // YYYY-MM-DD
		SlotType string `json:"slot_type" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
		Servings int    `json:"servings" validate:"omitempty,min=1"`
	}

	CreateMealPlanRequest struct {
		Name      string                `json:"name" validate:"required"`
		FamilyID  string                `json:"family_id" validate:"omitempty,uuid"`
		StartDate string                `json:"start_date" validate:"required"`
		EndDate   string                `json:"end_date" validate:"required"`
		Slots     []MealPlanSlotRequest `json:"slots" validate:"required,min=1,dive"`
	}

	MealPlanSlotResponse struct {
		ID       string    `json:"id"`
		MealID   string    `json:"meal_id"`
		MealName string    `json:"meal_name"`
		Day      time.Time `json:"day"`
		SlotType string    `json:"slot_type"`
		Servings int       `json:"servings"`
	}

	MealPlanResponse struct {
		ID        string                 `json:"id"`
		Name      string                 `json:"name"`
		FamilyID  *string                `json:"family_id,omitempty"`
		StartDate time.Time              `json:"start_date"`
		EndDate   time.Time              `json:"end_date"`
		Slots     []MealPlanSlotResponse `json:"slots"`
	}
)
