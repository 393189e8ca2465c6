package pantry

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/pkg/units"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

type MockPantryRepository struct {
	mock.Mock
}

func (m *MockPantryRepository) CreatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PantryItem), args.Error(1)
}

func (m *MockPantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPantryRepository) DeletePantryItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPantryRepository) GetPantryItems(ctx context.Context, scope domain.Scope, category string, page, limit int) ([]*entities.PantryItem, int64, error) {
	args := m.Called(ctx, scope, category, page, limit)
	return args.Get(0).([]*entities.PantryItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockPantryRepository) GetAllPantryItems(ctx context.Context, scope domain.Scope) ([]*entities.PantryItem, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]*entities.PantryItem), args.Error(1)
}

func (m *MockPantryRepository) FindByScopeAndIngredient(ctx context.Context, scope domain.Scope, ingredientID string) (*entities.PantryItem, error) {
	args := m.Called(ctx, scope, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PantryItem), args.Error(1)
}

func testPantryService(repo PantryRepository) *pantryService {
	log := logger.NewNop()
	return &pantryService{
		pantryRepository: repo,
		normalizer:       units.NewNormalizer(log),
		log:              log,
	}
}

func TestGetPantryTotalsSumsCanonicalQuantities(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	flour := uuid.New()
	scope := domain.PersonalScope(uuid.New())

	repo.On("GetAllPantryItems", mock.Anything, scope).Return([]*entities.PantryItem{
		{IngredientID: flour, CanonicalQuantity: f64Ptr(200), CanonicalUnit: strPtr("g")},
		{IngredientID: flour, CanonicalQuantity: f64Ptr(300), CanonicalUnit: strPtr("g")},
	}, nil)

	totals, err := service.GetPantryTotals(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.InDelta(t, 500, totals[flour].Quantity, 1e-9)
	require.Equal(t, "g", totals[flour].Unit)
	repo.AssertExpectations(t)
}

func TestGetPantryTotalsSkipsRowsWithoutCanonicalData(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	flour := uuid.New()
	saffron := uuid.New()
	scope := domain.PersonalScope(uuid.New())

	repo.On("GetAllPantryItems", mock.Anything, scope).Return([]*entities.PantryItem{
		{IngredientID: flour, CanonicalQuantity: f64Ptr(200), CanonicalUnit: strPtr("g")},
		{IngredientID: saffron, Quantity: f64Ptr(2), Unit: "pinches"},
	}, nil)

	totals, err := service.GetPantryTotals(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.Contains(t, totals, flour)
}

func TestGetPantryTotalsUnitClashKeepsFirstSeen(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	oil := uuid.New()
	scope := domain.PersonalScope(uuid.New())

	repo.On("GetAllPantryItems", mock.Anything, scope).Return([]*entities.PantryItem{
		{IngredientID: oil, CanonicalQuantity: f64Ptr(500), CanonicalUnit: strPtr("ml")},
		{IngredientID: oil, CanonicalQuantity: f64Ptr(200), CanonicalUnit: strPtr("g")},
	}, nil)

	totals, err := service.GetPantryTotals(context.Background(), scope)
	require.NoError(t, err)
	require.InDelta(t, 500, totals[oil].Quantity, 1e-9)
	require.Equal(t, "ml", totals[oil].Unit)
}

func TestGetPantryTotalsFlexibleAccumulatesBothViews(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	egg := uuid.New()
	scope := domain.PersonalScope(uuid.New())

	repo.On("GetAllPantryItems", mock.Anything, scope).Return([]*entities.PantryItem{
		{IngredientID: egg, Quantity: f64Ptr(6), Unit: "pcs", CanonicalQuantity: f64Ptr(360), CanonicalUnit: strPtr("g")},
		{IngredientID: egg, Quantity: f64Ptr(4), Unit: "pc"},
	}, nil)

	totals, err := service.GetPantryTotalsFlexible(context.Background(), scope)
	require.NoError(t, err)

	avail := totals[egg]
	require.NotNil(t, avail.CanonicalQuantity)
	require.InDelta(t, 360, *avail.CanonicalQuantity, 1e-9)
	require.Equal(t, "g", *avail.CanonicalUnit)
	require.InDelta(t, 10, avail.DisplayQuantity, 1e-9)
	require.Equal(t, "count", avail.DisplayUnit)
}

func TestCreditPurchaseCreatesRowWhenMissing(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	ing := &entities.Ingredient{ID: uuid.New(), Name: "mustard"}
	scope := domain.PersonalScope(uuid.New())

	repo.On("FindByScopeAndIngredient", mock.Anything, scope, ing.ID.String()).
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreatePantryItem", mock.Anything, mock.AnythingOfType("*entities.PantryItem")).Return(nil)

	item, err := service.CreditPurchase(context.Background(), scope, ing,
		f64Ptr(10), strPtr("ml"), f64Ptr(10), "ml")
	require.NoError(t, err)
	require.NotNil(t, item.CanonicalQuantity)
	require.InDelta(t, 10, *item.CanonicalQuantity, 1e-9)
	repo.AssertExpectations(t)
}

func TestCreditPurchaseAddsToExistingRow(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	ing := &entities.Ingredient{ID: uuid.New(), Name: "mustard"}
	scope := domain.PersonalScope(uuid.New())
	existing := &entities.PantryItem{
		IngredientID:      ing.ID,
		Quantity:          f64Ptr(5),
		Unit:              "ml",
		CanonicalQuantity: f64Ptr(5),
		CanonicalUnit:     strPtr("ml"),
	}

	repo.On("FindByScopeAndIngredient", mock.Anything, scope, ing.ID.String()).Return(existing, nil)
	repo.On("UpdatePantryItem", mock.Anything, existing).Return(nil)

	item, err := service.CreditPurchase(context.Background(), scope, ing,
		f64Ptr(10), strPtr("ml"), f64Ptr(10), "ml")
	require.NoError(t, err)
	require.InDelta(t, 15, *item.CanonicalQuantity, 1e-9)
	require.InDelta(t, 15, *item.Quantity, 1e-9)
}

func TestCreditPurchaseUnitMismatchLeavesStockUntouched(t *testing.T) {
	repo := new(MockPantryRepository)
	service := testPantryService(repo)

	ing := &entities.Ingredient{ID: uuid.New(), Name: "oil"}
	scope := domain.PersonalScope(uuid.New())
	existing := &entities.PantryItem{
		IngredientID:      ing.ID,
		Quantity:          f64Ptr(200),
		Unit:              "g",
		CanonicalQuantity: f64Ptr(200),
		CanonicalUnit:     strPtr("g"),
	}

	repo.On("FindByScopeAndIngredient", mock.Anything, scope, ing.ID.String()).Return(existing, nil)
	repo.On("UpdatePantryItem", mock.Anything, existing).Return(nil)

	item, err := service.CreditPurchase(context.Background(), scope, ing,
		f64Ptr(480), strPtr("ml"), f64Ptr(480), "ml")
	require.NoError(t, err)
	require.InDelta(t, 200, *item.CanonicalQuantity, 1e-9)
	require.Equal(t, "g", *item.CanonicalUnit)
	require.InDelta(t, 200, *item.Quantity, 1e-9)
}
