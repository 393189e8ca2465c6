package mealplan

import (
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/pkg/units"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetIngredientByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindOrCreateByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*entities.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) GetIngredients(ctx context.Context, search string, page, limit int) ([]*entities.Ingredient, int64, error) {
	args := m.Called(ctx, search, page, limit)
	return args.Get(0).([]*entities.Ingredient), args.Get(1).(int64), args.Error(2)
}

func testMealPlanService(ingRepo *MockIngredientRepository) *mealPlanService {
	log := logger.NewNop()
	return &mealPlanService{
		ingredientRepository: ingRepo,
		normalizer:           units.NewNormalizer(log),
		log:                  log,
	}
}

func planWithOneSlot(meal *entities.Meal, servings int) *entities.MealPlan {
	return &entities.MealPlan{
		ID: uuid.New(),
		Slots: []*entities.MealPlanSlot{
			{MealID: meal.ID, Servings: servings, Meal: meal},
		},
	}
}

func TestCalculateTotalNeededMultipliesServingsAndPortions(t *testing.T) {
	ingRepo := new(MockIngredientRepository)
	service := testMealPlanService(ingRepo)

	flour := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "flour",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
	}
	ingRepo.On("FindOrCreateByName", mock.Anything, "flour").Return(flour, nil)

	meal := &entities.Meal{
		ID:       uuid.New(),
		Portions: 2,
		Ingredients: []*entities.MealIngredient{
			{Name: "flour", AmountText: "100 g"},
		},
	}

	totals, err := service.CalculateTotalNeeded(context.Background(), planWithOneSlot(meal, 3))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	// 100 g × 3 servings × 2 portions
	require.InDelta(t, 600, totals[flour.ID].Quantity, 1e-9)
	require.Equal(t, "g", totals[flour.ID].Unit)
}

func TestCalculateTotalNeededAccumulatesAcrossSlots(t *testing.T) {
	ingRepo := new(MockIngredientRepository)
	service := testMealPlanService(ingRepo)

	flour := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "flour",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
	}
	ingRepo.On("FindOrCreateByName", mock.Anything, "flour").Return(flour, nil)

	meal := &entities.Meal{
		ID:       uuid.New(),
		Portions: 1,
		Ingredients: []*entities.MealIngredient{
			{Name: "flour", AmountText: "0.5 kg"},
		},
	}
	plan := &entities.MealPlan{
		ID: uuid.New(),
		Slots: []*entities.MealPlanSlot{
			{MealID: meal.ID, Servings: 1, Meal: meal},
			{MealID: meal.ID, Servings: 1, Meal: meal},
		},
	}

	totals, err := service.CalculateTotalNeeded(context.Background(), plan)
	require.NoError(t, err)
	require.InDelta(t, 1000, totals[flour.ID].Quantity, 1e-9)
}

func TestCalculateTotalNeededSkipsUnparseableLines(t *testing.T) {
	ingRepo := new(MockIngredientRepository)
	service := testMealPlanService(ingRepo)

	salt := &entities.Ingredient{ID: uuid.New(), Name: "salt"}
	flour := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "flour",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
	}
	ingRepo.On("FindOrCreateByName", mock.Anything, "salt").Return(salt, nil)
	ingRepo.On("FindOrCreateByName", mock.Anything, "flour").Return(flour, nil)

	meal := &entities.Meal{
		ID:       uuid.New(),
		Portions: 1,
		Ingredients: []*entities.MealIngredient{
			{Name: "salt", AmountText: "to taste"},
			{Name: "flour", AmountText: "200 g"},
		},
	}

	totals, err := service.CalculateTotalNeeded(context.Background(), planWithOneSlot(meal, 1))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.Contains(t, totals, flour.ID)
}

func TestCalculateTotalNeededUnitClashKeepsFirstSeen(t *testing.T) {
	ingRepo := new(MockIngredientRepository)
	service := testMealPlanService(ingRepo)

	// No canonical metadata: amounts pass through in their display units, so
	// "2 cups" and "100 g" land on different units for the same ingredient.
	oil := &entities.Ingredient{ID: uuid.New(), Name: "oil"}
	ingRepo.On("FindOrCreateByName", mock.Anything, "oil").Return(oil, nil)

	meal := &entities.Meal{
		ID:       uuid.New(),
		Portions: 1,
		Ingredients: []*entities.MealIngredient{
			{Name: "oil", AmountText: "2 cups"},
			{Name: "oil", AmountText: "100 g"},
		},
	}

	totals, err := service.CalculateTotalNeeded(context.Background(), planWithOneSlot(meal, 1))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.Equal(t, "cup", totals[oil.ID].Unit)
	require.InDelta(t, 2, totals[oil.ID].Quantity, 1e-9)
}

func TestCalculateTotalNeededFractionAmount(t *testing.T) {
	ingRepo := new(MockIngredientRepository)
	service := testMealPlanService(ingRepo)

	milk := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "milk",
		CanonicalUnitType: strPtr("volume"),
		CanonicalUnit:     strPtr("ml"),
	}
	ingRepo.On("FindOrCreateByName", mock.Anything, "milk").Return(milk, nil)

	meal := &entities.Meal{
		ID:       uuid.New(),
		Portions: 1,
		Ingredients: []*entities.MealIngredient{
			{Name: "milk", AmountText: "1/2 cup"},
		},
	}

	totals, err := service.CalculateTotalNeeded(context.Background(), planWithOneSlot(meal, 1))
	require.NoError(t, err)
	require.InDelta(t, 120, totals[milk.ID].Quantity, 1e-9)
	require.Equal(t, "ml", totals[milk.ID].Unit)
}
