package grocery

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	GroceryRepository interface {
		CreateGroceryList(ctx context.Context, list *entities.GroceryList) error
		GetGroceryListByID(ctx context.Context, id string) (*entities.GroceryList, error)
		GetGroceryListByMealPlanID(ctx context.Context, mealPlanID string) (*entities.GroceryList, error)
		GetGroceryLists(ctx context.Context, scope domain.Scope, page, limit int) ([]*entities.GroceryList, int64, error)
		TouchGroceryList(ctx context.Context, id string) error

		CreateGroceryItem(ctx context.Context, item *entities.GroceryListItem) error
		GetGroceryItemByID(ctx context.Context, id string) (*entities.GroceryListItem, error)
		UpdateGroceryItem(ctx context.Context, item *entities.GroceryListItem) error
		DeleteGroceryItem(ctx context.Context, id string) error
		DeleteGeneratedItems(ctx context.Context, listID, mealPlanID string) error

		WithTransaction(ctx context.Context, fn func(txRepo GroceryRepository, tx *gorm.DB) error) error
	}

	groceryRepository struct {
		db *gorm.DB
	}
)

func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepository{db: db}
}

func (r *groceryRepository) CreateGroceryList(ctx context.Context, list *entities.GroceryList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *groceryRepository) GetGroceryListByID(ctx context.Context, id string) (*entities.GroceryList, error) {
	var list entities.GroceryList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Ingredient").
		Where("id = ?", id).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *groceryRepository) GetGroceryListByMealPlanID(ctx context.Context, mealPlanID string) (*entities.GroceryList, error) {
	var list entities.GroceryList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Ingredient").
		Where("meal_plan_id = ?", mealPlanID).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *groceryRepository) GetGroceryLists(ctx context.Context, scope domain.Scope, page, limit int) ([]*entities.GroceryList, int64, error) {
	var lists []*entities.GroceryList
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx)
	if familyID, ok := scope.FamilyID(); ok {
		query = query.Where("family_id = ?", familyID)
	} else {
		userID, _ := scope.UserID()
		query = query.Where("owner_user_id = ? AND family_id IS NULL", userID)
	}

	if err := query.Model(&entities.GroceryList{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Items").
		Preload("Items.Ingredient").
		Order("updated_at desc").
		Offset(offset).Limit(limit).
		Find(&lists).Error; err != nil {
		return nil, 0, err
	}
	return lists, count, nil
}

func (r *groceryRepository) TouchGroceryList(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entities.GroceryList{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r *groceryRepository) CreateGroceryItem(ctx context.Context, item *entities.GroceryListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *groceryRepository) GetGroceryItemByID(ctx context.Context, id string) (*entities.GroceryListItem, error) {
	var item entities.GroceryListItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Preload("GroceryList").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *groceryRepository) UpdateGroceryItem(ctx context.Context, item *entities.GroceryListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *groceryRepository) DeleteGroceryItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.GroceryListItem{}).Error
}

// DeleteGeneratedItems removes auto-generated unpurchased items from a prior
// rebuild of the same plan. Manual and purchased lines are never touched.
func (r *groceryRepository) DeleteGeneratedItems(ctx context.Context, listID, mealPlanID string) error {
	return r.db.WithContext(ctx).
		Where("grocery_list_id = ? AND source_meal_plan_id = ? AND is_manual = ? AND is_purchased = ?",
			listID, mealPlanID, false, false).
		Delete(&entities.GroceryListItem{}).Error
}

// WithTransaction runs fn inside a database transaction and hands it a
// repository bound to that transaction, so every write commits or rolls back
// as one unit.
func (r *groceryRepository) WithTransaction(ctx context.Context, fn func(txRepo GroceryRepository, tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGroceryRepository(tx), tx)
	})
}
