package mealplan

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		CreateMealPlan(ctx context.Context, plan *entities.MealPlan) error
		GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error)
		GetMealPlans(ctx context.Context, scope domain.Scope, page, limit int) ([]*entities.MealPlan, int64, error)

		CreateMeal(ctx context.Context, meal *entities.Meal) error
		GetMealByID(ctx context.Context, id string) (*entities.Meal, error)
		UpdateMeal(ctx context.Context, meal *entities.Meal) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) CreateMealPlan(ctx context.Context, plan *entities.MealPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *mealPlanRepository) GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error) {
	var plan entities.MealPlan
	if err := r.db.WithContext(ctx).
		Preload("Slots").
		Preload("Slots.Meal").
		Preload("Slots.Meal.Ingredients").
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) GetMealPlans(ctx context.Context, scope domain.Scope, page, limit int) ([]*entities.MealPlan, int64, error) {
	var plans []*entities.MealPlan
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx)
	if familyID, ok := scope.FamilyID(); ok {
		query = query.Where("family_id = ?", familyID)
	} else {
		userID, _ := scope.UserID()
		query = query.Where("owner_user_id = ? AND family_id IS NULL", userID)
	}

	if err := query.Model(&entities.MealPlan{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Slots").
		Preload("Slots.Meal").
		Order("start_date desc").
		Offset(offset).Limit(limit).
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, count, nil
}

func (r *mealPlanRepository) CreateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealPlanRepository) GetMealByID(ctx context.Context, id string) (*entities.Meal, error) {
	var meal entities.Meal
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id = ?", id).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealPlanRepository) UpdateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}
