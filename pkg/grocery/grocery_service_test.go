package grocery

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/pkg/pantry"
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

func testService() *groceryService {
	log := logger.NewNop()
	return &groceryService{
		normalizer: units.NewNormalizer(log),
		log:        log,
	}
}

func TestComputeRemainingToBuyFullyCovered(t *testing.T) {
	s := testService()
	oil := uuid.New()

	// need 480 ml, have 500 ml: nothing left to buy
	remaining := s.ComputeRemainingToBuy(
		map[uuid.UUID]domain.CanonicalAmount{oil: {Quantity: 480, Unit: "ml"}},
		map[uuid.UUID]domain.CanonicalAmount{oil: {Quantity: 500, Unit: "ml"}},
	)
	require.Empty(t, remaining)
}

func TestComputeRemainingToBuyExactCover(t *testing.T) {
	s := testService()
	chicken := uuid.New()

	remaining := s.ComputeRemainingToBuy(
		map[uuid.UUID]domain.CanonicalAmount{chicken: {Quantity: 453.592, Unit: "g"}},
		map[uuid.UUID]domain.CanonicalAmount{chicken: {Quantity: 453.592, Unit: "g"}},
	)
	require.Empty(t, remaining)
}

func TestComputeRemainingToBuyPartialCover(t *testing.T) {
	s := testService()
	mustard := uuid.New()

	remaining := s.ComputeRemainingToBuy(
		map[uuid.UUID]domain.CanonicalAmount{mustard: {Quantity: 15, Unit: "ml"}},
		map[uuid.UUID]domain.CanonicalAmount{mustard: {Quantity: 5, Unit: "ml"}},
	)
	require.Len(t, remaining, 1)
	require.InDelta(t, 10, remaining[mustard].Quantity, 1e-9)
	require.Equal(t, "ml", remaining[mustard].Unit)
}

func TestComputeRemainingToBuyNotInPantry(t *testing.T) {
	s := testService()
	flour := uuid.New()

	remaining := s.ComputeRemainingToBuy(
		map[uuid.UUID]domain.CanonicalAmount{flour: {Quantity: 500, Unit: "g"}},
		map[uuid.UUID]domain.CanonicalAmount{},
	)
	require.Len(t, remaining, 1)
	require.InDelta(t, 500, remaining[flour].Quantity, 1e-9)
}

func TestComputeRemainingToBuyUnitMismatchKeepsFullAmount(t *testing.T) {
	s := testService()
	oil := uuid.New()

	// needed in ml, pantry tracked in g: no guessing, keep the full need
	remaining := s.ComputeRemainingToBuy(
		map[uuid.UUID]domain.CanonicalAmount{oil: {Quantity: 480, Unit: "ml"}},
		map[uuid.UUID]domain.CanonicalAmount{oil: {Quantity: 200, Unit: "g"}},
	)
	require.Len(t, remaining, 1)
	require.InDelta(t, 480, remaining[oil].Quantity, 1e-9)
	require.Equal(t, "ml", remaining[oil].Unit)
}

func TestCanonicalForItemPrefersStoredValue(t *testing.T) {
	s := testService()
	item := &entities.GroceryListItem{
		CanonicalQuantityNeeded: f64Ptr(500),
		CanonicalUnit:           strPtr("g"),
		Quantity:                f64Ptr(1),
		Unit:                    "kg",
		Ingredient: &entities.Ingredient{
			CanonicalUnitType: strPtr("weight"),
			CanonicalUnit:     strPtr("g"),
		},
	}

	qty, unit := s.canonicalForItem(item)
	require.NotNil(t, qty)
	require.InDelta(t, 500, *qty, 1e-9)
	require.Equal(t, "g", *unit)
}

func TestCanonicalForItemFallsBackToDisplayPair(t *testing.T) {
	s := testService()
	item := &entities.GroceryListItem{
		Quantity: f64Ptr(1),
		Unit:     "kg",
		Ingredient: &entities.Ingredient{
			CanonicalUnitType: strPtr("weight"),
			CanonicalUnit:     strPtr("g"),
		},
	}

	qty, unit := s.canonicalForItem(item)
	require.NotNil(t, qty)
	require.InDelta(t, 1000, *qty, 1e-9)
	require.Equal(t, "g", *unit)
}

func TestCanonicalForItemFallsBackToNote(t *testing.T) {
	s := testService()
	item := &entities.GroceryListItem{
		Note: "2 cups",
		Ingredient: &entities.Ingredient{
			CanonicalUnitType: strPtr("volume"),
			CanonicalUnit:     strPtr("ml"),
		},
	}

	qty, unit := s.canonicalForItem(item)
	require.NotNil(t, qty)
	require.InDelta(t, 480, *qty, 1e-9)
	require.Equal(t, "ml", *unit)
}

func TestCanonicalForItemGivesUpGracefully(t *testing.T) {
	s := testService()
	item := &entities.GroceryListItem{
		Note:       "to taste",
		Ingredient: &entities.Ingredient{},
	}

	qty, unit := s.canonicalForItem(item)
	require.Nil(t, qty)
	require.Nil(t, unit)
}

func TestPantryAvailabilityPrefersCanonical(t *testing.T) {
	id := uuid.New()
	totals := map[uuid.UUID]domain.PantryAvailability{
		id: {
			CanonicalQuantity: f64Ptr(500),
			CanonicalUnit:     strPtr("g"),
			DisplayQuantity:   1,
			DisplayUnit:       "kg",
		},
	}

	qty, unit, ok := pantryAvailability(totals, id)
	require.True(t, ok)
	require.InDelta(t, 500, qty, 1e-9)
	require.Equal(t, "g", unit)
}

func TestPantryAvailabilityDegradesToDisplay(t *testing.T) {
	id := uuid.New()
	totals := map[uuid.UUID]domain.PantryAvailability{
		id: {DisplayQuantity: 3, DisplayUnit: "count"},
	}

	qty, unit, ok := pantryAvailability(totals, id)
	require.True(t, ok)
	require.InDelta(t, 3, qty, 1e-9)
	require.Equal(t, "count", unit)

	_, _, ok = pantryAvailability(totals, uuid.New())
	require.False(t, ok)
}

type MockGroceryRepository struct {
	mock.Mock
}

func (m *MockGroceryRepository) CreateGroceryList(ctx context.Context, list *entities.GroceryList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockGroceryRepository) GetGroceryListByID(ctx context.Context, id string) (*entities.GroceryList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GroceryList), args.Error(1)
}

func (m *MockGroceryRepository) GetGroceryListByMealPlanID(ctx context.Context, mealPlanID string) (*entities.GroceryList, error) {
	args := m.Called(ctx, mealPlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GroceryList), args.Error(1)
}

func (m *MockGroceryRepository) GetGroceryLists(ctx context.Context, scope domain.Scope, page, limit int) ([]*entities.GroceryList, int64, error) {
	args := m.Called(ctx, scope, page, limit)
	return args.Get(0).([]*entities.GroceryList), args.Get(1).(int64), args.Error(2)
}

func (m *MockGroceryRepository) TouchGroceryList(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroceryRepository) CreateGroceryItem(ctx context.Context, item *entities.GroceryListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockGroceryRepository) GetGroceryItemByID(ctx context.Context, id string) (*entities.GroceryListItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GroceryListItem), args.Error(1)
}

func (m *MockGroceryRepository) UpdateGroceryItem(ctx context.Context, item *entities.GroceryListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockGroceryRepository) DeleteGroceryItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroceryRepository) DeleteGeneratedItems(ctx context.Context, listID, mealPlanID string) error {
	args := m.Called(ctx, listID, mealPlanID)
	return args.Error(0)
}

// WithTransaction hands the callback the mock itself, so the test can assert
// on writes made inside the transaction.
func (m *MockGroceryRepository) WithTransaction(ctx context.Context, fn func(txRepo GroceryRepository, tx *gorm.DB) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m, nil)
}

type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	args := m.Called(ctx, req, userID)
	return args.Get(0).(domain.PantryItemResponse), args.Error(1)
}

func (m *MockPantryService) UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	args := m.Called(ctx, id, req, userID)
	return args.Get(0).(domain.PantryItemResponse), args.Error(1)
}

func (m *MockPantryService) DeletePantryItem(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockPantryService) GetPantryItems(ctx context.Context, userID string, familyID string, category string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	args := m.Called(ctx, userID, familyID, category, page, limit)
	return args.Get(0).([]domain.PantryItemResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPantryService) GetPantryTotals(ctx context.Context, scope domain.Scope) (map[uuid.UUID]domain.CanonicalAmount, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.CanonicalAmount), args.Error(1)
}

func (m *MockPantryService) GetPantryTotalsFlexible(ctx context.Context, scope domain.Scope) (map[uuid.UUID]domain.PantryAvailability, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.PantryAvailability), args.Error(1)
}

func (m *MockPantryService) CreditPurchase(ctx context.Context, scope domain.Scope, ing *entities.Ingredient, canonicalQty *float64, canonicalUnit *string, displayQty *float64, displayUnit string) (*entities.PantryItem, error) {
	args := m.Called(ctx, scope, ing, canonicalQty, canonicalUnit, displayQty, displayUnit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PantryItem), args.Error(1)
}

func (m *MockPantryService) GetPantryRow(ctx context.Context, scope domain.Scope, ingredientID string) (*entities.PantryItem, error) {
	args := m.Called(ctx, scope, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PantryItem), args.Error(1)
}

func (m *MockPantryService) WithTx(tx *gorm.DB) pantry.PantryService {
	args := m.Called(tx)
	return args.Get(0).(pantry.PantryService)
}

type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) CreateMeal(ctx context.Context, req domain.CreateMealRequest, userID string) (string, error) {
	args := m.Called(ctx, req, userID)
	return args.String(0), args.Error(1)
}

func (m *MockMealPlanService) UploadMealImage(ctx context.Context, req domain.UploadMealImageRequest, userID string) error {
	args := m.Called(ctx, req, userID)
	return args.Error(0)
}

func (m *MockMealPlanService) CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, userID string) (domain.MealPlanResponse, error) {
	args := m.Called(ctx, req, userID)
	return args.Get(0).(domain.MealPlanResponse), args.Error(1)
}

func (m *MockMealPlanService) GetMealPlans(ctx context.Context, userID string, familyID string, page, limit int) ([]domain.MealPlanResponse, int64, error) {
	args := m.Called(ctx, userID, familyID, page, limit)
	return args.Get(0).([]domain.MealPlanResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockMealPlanService) GetMealPlan(ctx context.Context, id string) (*entities.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) CalculateTotalNeeded(ctx context.Context, plan *entities.MealPlan) (map[uuid.UUID]domain.CanonicalAmount, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.CanonicalAmount), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u *entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) CreateFamily(ctx context.Context, family *entities.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockUserRepository) GetFamilyByID(ctx context.Context, id string) (*entities.Family, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Family), args.Error(1)
}

func (m *MockUserRepository) AddFamilyMember(ctx context.Context, member *entities.FamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockUserRepository) GetFamilyMembers(ctx context.Context, familyID string) ([]*entities.FamilyMember, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FamilyMember), args.Error(1)
}

func (m *MockUserRepository) GetFamilyByUserID(ctx context.Context, userID string) (*entities.Family, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Family), args.Error(1)
}

func (m *MockUserRepository) IsFamilyMember(ctx context.Context, familyID, userID string) (bool, error) {
	args := m.Called(ctx, familyID, userID)
	return args.Bool(0), args.Error(1)
}

type serviceMocks struct {
	repo      *MockGroceryRepository
	pantrySvc *MockPantryService
	mealPlans *MockMealPlanService
	users     *MockUserRepository
}

func testServiceWithMocks() (*groceryService, *serviceMocks) {
	mocks := &serviceMocks{
		repo:      new(MockGroceryRepository),
		pantrySvc: new(MockPantryService),
		mealPlans: new(MockMealPlanService),
		users:     new(MockUserRepository),
	}
	log := logger.NewNop()
	service := &groceryService{
		groceryRepository: mocks.repo,
		pantryService:     mocks.pantrySvc,
		mealPlanService:   mocks.mealPlans,
		userRepository:    mocks.users,
		normalizer:        units.NewNormalizer(log),
		log:               log,
	}
	return service, mocks
}

func TestResolvePantryScopeFamilyList(t *testing.T) {
	service, mocks := testServiceWithMocks()
	familyID := uuid.New()
	list := &entities.GroceryList{FamilyID: &familyID}

	scope, err := service.ResolvePantryScope(context.Background(), list)
	require.NoError(t, err)
	require.Equal(t, domain.FamilyScope(familyID), scope)
	mocks.users.AssertNumberOfCalls(t, "GetFamilyByUserID", 0)
}

func TestResolvePantryScopePersonalListOwnerInFamily(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	familyID := uuid.New()
	list := &entities.GroceryList{OwnerUserID: &owner}

	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(&entities.Family{ID: familyID}, nil)

	scope, err := service.ResolvePantryScope(context.Background(), list)
	require.NoError(t, err)
	require.Equal(t, domain.FamilyScope(familyID), scope)
}

func TestResolvePantryScopePersonalListWithoutFamily(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	list := &entities.GroceryList{OwnerUserID: &owner}

	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(nil, gorm.ErrRecordNotFound)

	scope, err := service.ResolvePantryScope(context.Background(), list)
	require.NoError(t, err)
	require.Equal(t, domain.PersonalScope(owner), scope)
}

func TestSyncListWithPantrySubtractsStock(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	listID := uuid.New()
	mustard := uuid.New()
	oil := uuid.New()

	mustardItem := &entities.GroceryListItem{
		ID:                      uuid.New(),
		GroceryListID:           listID,
		IngredientID:            mustard,
		Quantity:                f64Ptr(15),
		Unit:                    "ml",
		CanonicalQuantityNeeded: f64Ptr(15),
		CanonicalUnit:           strPtr("ml"),
		Ingredient:              &entities.Ingredient{ID: mustard, Name: "dijon mustard"},
	}
	oilItem := &entities.GroceryListItem{
		ID:                      uuid.New(),
		GroceryListID:           listID,
		IngredientID:            oil,
		Quantity:                f64Ptr(480),
		Unit:                    "ml",
		CanonicalQuantityNeeded: f64Ptr(480),
		CanonicalUnit:           strPtr("ml"),
		Ingredient:              &entities.Ingredient{ID: oil, Name: "olive oil"},
	}
	list := &entities.GroceryList{
		ID:          listID,
		OwnerUserID: &owner,
		Items:       []*entities.GroceryListItem{mustardItem, oilItem},
	}

	mocks.repo.On("GetGroceryListByID", mock.Anything, listID.String()).Return(list, nil)
	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(nil, gorm.ErrRecordNotFound)
	mocks.pantrySvc.On("GetPantryTotalsFlexible", mock.Anything, domain.PersonalScope(owner)).
		Return(map[uuid.UUID]domain.PantryAvailability{
			mustard: {CanonicalQuantity: f64Ptr(5), CanonicalUnit: strPtr("ml")},
			oil:     {CanonicalQuantity: f64Ptr(500), CanonicalUnit: strPtr("ml")},
		}, nil)
	mocks.repo.On("WithTransaction", mock.Anything).Return(nil)
	mocks.repo.On("UpdateGroceryItem", mock.Anything, mustardItem).Return(nil)
	mocks.repo.On("DeleteGroceryItem", mock.Anything, oilItem.ID.String()).Return(nil)
	mocks.repo.On("TouchGroceryList", mock.Anything, listID.String()).Return(nil)

	result, err := service.SyncListWithPantry(context.Background(), listID.String(), owner.String())
	require.NoError(t, err)

	// oil fully covered, mustard reduced from 15 ml to 10 ml
	require.Equal(t, 1, result.ItemsRemoved)
	require.Equal(t, 1, result.ItemsUpdated)
	require.Len(t, result.Remaining, 1)
	require.Equal(t, mustard.String(), result.Remaining[0].IngredientID)
	require.InDelta(t, 10, *mustardItem.CanonicalQuantityNeeded, 1e-9)
	require.InDelta(t, 10, *mustardItem.Quantity, 1e-9)
	require.Equal(t, "ml", mustardItem.Unit)
	mocks.repo.AssertExpectations(t)
}

func TestSyncListWithPantryKeepsItemOnUnitMismatch(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	listID := uuid.New()
	oil := uuid.New()

	oilItem := &entities.GroceryListItem{
		ID:                      uuid.New(),
		GroceryListID:           listID,
		IngredientID:            oil,
		Quantity:                f64Ptr(480),
		Unit:                    "ml",
		CanonicalQuantityNeeded: f64Ptr(480),
		CanonicalUnit:           strPtr("ml"),
		Ingredient:              &entities.Ingredient{ID: oil, Name: "olive oil"},
	}
	list := &entities.GroceryList{
		ID:          listID,
		OwnerUserID: &owner,
		Items:       []*entities.GroceryListItem{oilItem},
	}

	mocks.repo.On("GetGroceryListByID", mock.Anything, listID.String()).Return(list, nil)
	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(nil, gorm.ErrRecordNotFound)
	// pantry tracks the oil by weight; never guess a conversion
	mocks.pantrySvc.On("GetPantryTotalsFlexible", mock.Anything, domain.PersonalScope(owner)).
		Return(map[uuid.UUID]domain.PantryAvailability{
			oil: {CanonicalQuantity: f64Ptr(200), CanonicalUnit: strPtr("g")},
		}, nil)
	mocks.repo.On("WithTransaction", mock.Anything).Return(nil)
	mocks.repo.On("TouchGroceryList", mock.Anything, listID.String()).Return(nil)

	result, err := service.SyncListWithPantry(context.Background(), listID.String(), owner.String())
	require.NoError(t, err)

	require.Equal(t, 0, result.ItemsRemoved)
	require.Equal(t, 0, result.ItemsUpdated)
	require.Len(t, result.Remaining, 1)
	require.True(t, result.Remaining[0].UnitMismatch)
	require.InDelta(t, 480, *result.Remaining[0].CanonicalQuantity, 1e-9)
	mocks.repo.AssertNumberOfCalls(t, "DeleteGroceryItem", 0)
	mocks.repo.AssertNumberOfCalls(t, "UpdateGroceryItem", 0)
}

func TestRebuildFromMealPlanPreservesManualItems(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	planID := uuid.New()
	listID := uuid.New()
	flour := uuid.New()
	sugar := uuid.New()

	plan := &entities.MealPlan{ID: planID, OwnerUserID: &owner, Name: "Week of Sep 1"}
	manualFlour := &entities.GroceryListItem{
		ID:            uuid.New(),
		GroceryListID: listID,
		IngredientID:  flour,
		Quantity:      f64Ptr(1),
		Unit:          "kg",
		IsManual:      true,
		Ingredient:    &entities.Ingredient{ID: flour, Name: "flour"},
	}
	list := &entities.GroceryList{
		ID:          listID,
		OwnerUserID: &owner,
		Name:        plan.Name,
		MealPlanID:  &planID,
		Items:       []*entities.GroceryListItem{manualFlour},
	}

	mocks.mealPlans.On("GetMealPlan", mock.Anything, planID.String()).Return(plan, nil)
	mocks.repo.On("GetGroceryListByMealPlanID", mock.Anything, planID.String()).Return(list, nil)
	mocks.mealPlans.On("CalculateTotalNeeded", mock.Anything, plan).
		Return(map[uuid.UUID]domain.CanonicalAmount{
			flour: {Quantity: 500, Unit: "g"},
			sugar: {Quantity: 200, Unit: "g"},
		}, nil)
	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(nil, gorm.ErrRecordNotFound)
	mocks.pantrySvc.On("GetPantryTotals", mock.Anything, domain.PersonalScope(owner)).
		Return(map[uuid.UUID]domain.CanonicalAmount{}, nil)
	mocks.repo.On("WithTransaction", mock.Anything).Return(nil)
	mocks.repo.On("DeleteGeneratedItems", mock.Anything, listID.String(), planID.String()).Return(nil)

	var created []*entities.GroceryListItem
	mocks.repo.On("CreateGroceryItem", mock.Anything, mock.AnythingOfType("*entities.GroceryListItem")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*entities.GroceryListItem))
		}).Return(nil)
	mocks.repo.On("TouchGroceryList", mock.Anything, listID.String()).Return(nil)
	mocks.repo.On("GetGroceryListByID", mock.Anything, listID.String()).Return(list, nil)

	_, err := service.RebuildFromMealPlan(context.Background(), planID.String(), owner.String())
	require.NoError(t, err)

	// flour is already covered by the manual line; only sugar is regenerated
	require.Len(t, created, 1)
	require.Equal(t, sugar, created[0].IngredientID)
	require.NotNil(t, created[0].SourceMealPlanID)
	require.Equal(t, planID, *created[0].SourceMealPlanID)
	require.InDelta(t, 200, *created[0].CanonicalQuantityNeeded, 1e-9)
	require.Equal(t, "g", *created[0].CanonicalUnit)
	mocks.repo.AssertExpectations(t)
}

func TestMarkItemPurchasedCreditsPantry(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	oil := uuid.New()

	item := &entities.GroceryListItem{
		ID:                      uuid.New(),
		GroceryListID:           uuid.New(),
		IngredientID:            oil,
		Quantity:                f64Ptr(480),
		Unit:                    "ml",
		CanonicalQuantityNeeded: f64Ptr(480),
		CanonicalUnit:           strPtr("ml"),
		Ingredient:              &entities.Ingredient{ID: oil, Name: "olive oil"},
		GroceryList:             &entities.GroceryList{OwnerUserID: &owner},
	}
	row := &entities.PantryItem{
		ID:                uuid.New(),
		OwnerUserID:       &owner,
		IngredientID:      oil,
		CanonicalQuantity: f64Ptr(480),
		CanonicalUnit:     strPtr("ml"),
	}

	mocks.repo.On("GetGroceryItemByID", mock.Anything, item.ID.String()).Return(item, nil)
	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(nil, gorm.ErrRecordNotFound)
	mocks.repo.On("WithTransaction", mock.Anything).Return(nil)
	mocks.repo.On("UpdateGroceryItem", mock.Anything, item).Return(nil)
	mocks.pantrySvc.On("WithTx", mock.Anything).Return(mocks.pantrySvc)
	mocks.pantrySvc.On("CreditPurchase", mock.Anything, domain.PersonalScope(owner),
		item.Ingredient, item.CanonicalQuantityNeeded, item.CanonicalUnit, mock.Anything, "ml").
		Return(row, nil)

	res, err := service.MarkItemPurchased(context.Background(), item.ID.String(), owner.String())
	require.NoError(t, err)
	require.True(t, res.Item.IsPurchased)
	require.True(t, res.Item.Checked)
	require.Equal(t, row.ID.String(), res.PantryItem.ID)
	mocks.pantrySvc.AssertNumberOfCalls(t, "CreditPurchase", 1)
}

func TestMarkItemPurchasedSecondCallDoesNotRecredit(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()
	oil := uuid.New()

	item := &entities.GroceryListItem{
		ID:            uuid.New(),
		GroceryListID: uuid.New(),
		IngredientID:  oil,
		Quantity:      f64Ptr(480),
		Unit:          "ml",
		Checked:       true,
		IsPurchased:   true,
		Ingredient:    &entities.Ingredient{ID: oil, Name: "olive oil"},
		GroceryList:   &entities.GroceryList{OwnerUserID: &owner},
	}
	row := &entities.PantryItem{
		ID:                uuid.New(),
		OwnerUserID:       &owner,
		IngredientID:      oil,
		CanonicalQuantity: f64Ptr(480),
		CanonicalUnit:     strPtr("ml"),
	}

	mocks.repo.On("GetGroceryItemByID", mock.Anything, item.ID.String()).Return(item, nil)
	mocks.users.On("GetFamilyByUserID", mock.Anything, owner.String()).
		Return(nil, gorm.ErrRecordNotFound)
	mocks.pantrySvc.On("GetPantryRow", mock.Anything, domain.PersonalScope(owner), oil.String()).
		Return(row, nil)

	res, err := service.MarkItemPurchased(context.Background(), item.ID.String(), owner.String())
	require.NoError(t, err)
	require.True(t, res.Item.IsPurchased)
	require.Equal(t, row.ID.String(), res.PantryItem.ID)
	mocks.repo.AssertNumberOfCalls(t, "WithTransaction", 0)
	mocks.pantrySvc.AssertNumberOfCalls(t, "CreditPurchase", 0)
}

func TestToggleItemCheckedLeavesPurchasedItemAlone(t *testing.T) {
	service, mocks := testServiceWithMocks()
	owner := uuid.New()

	item := &entities.GroceryListItem{
		ID:            uuid.New(),
		GroceryListID: uuid.New(),
		IngredientID:  uuid.New(),
		Checked:       true,
		IsPurchased:   true,
		GroceryList:   &entities.GroceryList{OwnerUserID: &owner},
	}

	mocks.repo.On("GetGroceryItemByID", mock.Anything, item.ID.String()).Return(item, nil)

	res, err := service.ToggleItemChecked(context.Background(), item.ID.String(), owner.String())
	require.NoError(t, err)
	require.True(t, res.Checked)
	require.True(t, res.IsPurchased)
	mocks.repo.AssertNumberOfCalls(t, "UpdateGroceryItem", 0)
}
