package pantry

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	PantryRepository interface {
		CreatePantryItem(ctx context.Context, item *entities.PantryItem) error
		GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error)
		UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error
		DeletePantryItem(ctx context.Context, id string) error
		GetPantryItems(ctx context.Context, scope domain.Scope, category string, page, limit int) ([]*entities.PantryItem, int64, error)
		GetAllPantryItems(ctx context.Context, scope domain.Scope) ([]*entities.PantryItem, error)
		FindByScopeAndIngredient(ctx context.Context, scope domain.Scope, ingredientID string) (*entities.PantryItem, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func scopeFilter(query *gorm.DB, scope domain.Scope) *gorm.DB {
	if familyID, ok := scope.FamilyID(); ok {
		return query.Where("family_id = ?", familyID)
	}
	userID, _ := scope.UserID()
	return query.Where("owner_user_id = ? AND family_id IS NULL", userID)
}

func (r *pantryRepository) CreatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *pantryRepository) DeletePantryItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PantryItem{}).Error
}

func (r *pantryRepository) GetPantryItems(ctx context.Context, scope domain.Scope, category string, page, limit int) ([]*entities.PantryItem, int64, error) {
	var items []*entities.PantryItem
	var count int64

	offset := (page - 1) * limit
	query := scopeFilter(r.db.WithContext(ctx), scope)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	if err := query.Model(&entities.PantryItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Ingredient").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *pantryRepository) GetAllPantryItems(ctx context.Context, scope domain.Scope) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem
	if err := scopeFilter(r.db.WithContext(ctx), scope).
		Preload("Ingredient").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pantryRepository) FindByScopeAndIngredient(ctx context.Context, scope domain.Scope, ingredientID string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := scopeFilter(r.db.WithContext(ctx), scope).
		Preload("Ingredient").
		Where("ingredient_id = ?", ingredientID).
		Order("created_at asc").
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
