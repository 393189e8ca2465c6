package ingredient

import (
	"MealHive-Backend/entities"
	"context"
	"strings"

	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error)
		FindOrCreateByName(ctx context.Context, name string) (*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredients(ctx context.Context, search string, page, limit int) ([]*entities.Ingredient, int64, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindOrCreateByName resolves an ingredient by name case-insensitively,
// auto-creating it when missing so free-text meal ingredients always resolve.
func (r *ingredientRepository) FindOrCreateByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	ingredient, err := r.GetIngredientByName(ctx, name)
	if err == nil {
		return ingredient, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := &entities.Ingredient{Name: strings.TrimSpace(name)}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, search string, page, limit int) ([]*entities.Ingredient, int64, error) {
	var ingredients []*entities.Ingredient
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}
	return ingredients, count, nil
}
