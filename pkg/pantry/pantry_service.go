package pantry

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/pkg/ingredient"
	"MealHive-Backend/pkg/units"
	"MealHive-Backend/pkg/user"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PantryService interface {
		AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error)
		UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) (domain.PantryItemResponse, error)
		DeletePantryItem(ctx context.Context, id string, userID string) error
		GetPantryItems(ctx context.Context, userID string, familyID string, category string, page, limit int) ([]domain.PantryItemResponse, int64, error)

		GetPantryTotals(ctx context.Context, scope domain.Scope) (map[uuid.UUID]domain.CanonicalAmount, error)
		GetPantryTotalsFlexible(ctx context.Context, scope domain.Scope) (map[uuid.UUID]domain.PantryAvailability, error)

		CreditPurchase(ctx context.Context, scope domain.Scope, ing *entities.Ingredient, canonicalQty *float64, canonicalUnit *string, displayQty *float64, displayUnit string) (*entities.PantryItem, error)
		GetPantryRow(ctx context.Context, scope domain.Scope, ingredientID string) (*entities.PantryItem, error)

		// WithTx returns a copy of the service bound to the given transaction,
		// so pantry writes can join a caller's all-or-nothing commit.
		WithTx(tx *gorm.DB) PantryService
	}

	pantryService struct {
		pantryRepository     PantryRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		normalizer           *units.Normalizer
		log                  *logger.Logger
	}
)

func NewPantryService(
	pantryRepository PantryRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	normalizer *units.Normalizer,
	log *logger.Logger,
) PantryService {
	return &pantryService{
		pantryRepository:     pantryRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		normalizer:           normalizer,
		log:                  log,
	}
}

func (s *pantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	scope, err := s.resolveRequestScope(ctx, req.FamilyID, userID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	ing, err := s.ingredientRepository.FindOrCreateByName(ctx, req.IngredientName)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	familyID, ownerUserID := scope.IDs()
	item := &entities.PantryItem{
		ID:           uuid.New(),
		FamilyID:     familyID,
		OwnerUserID:  ownerUserID,
		IngredientID: ing.ID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Category:     req.Category,
	}
	s.applyCanonical(item, ing)

	if err := s.pantryRepository.CreatePantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}
	item.Ingredient = ing
	return toPantryItemResponse(item), nil
}

func (s *pantryService) UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PantryItemResponse{}, domain.ErrPantryItemNotFound
		}
		return domain.PantryItemResponse{}, err
	}

	if err := s.authorizeItemAccess(ctx, item, userID); err != nil {
		return domain.PantryItemResponse{}, err
	}

	if req.Quantity != nil {
		item.Quantity = req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	s.applyCanonical(item, item.Ingredient)

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}
	return toPantryItemResponse(item), nil
}

func (s *pantryService) DeletePantryItem(ctx context.Context, id string, userID string) error {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPantryItemNotFound
		}
		return err
	}

	if err := s.authorizeItemAccess(ctx, item, userID); err != nil {
		return err
	}
	return s.pantryRepository.DeletePantryItem(ctx, id)
}

func (s *pantryService) GetPantryItems(ctx context.Context, userID string, familyID string, category string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	scope, err := s.resolveRequestScope(ctx, familyID, userID)
	if err != nil {
		return nil, 0, err
	}

	items, count, err := s.pantryRepository.GetPantryItems(ctx, scope, category, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toPantryItemResponse(item))
	}
	return responses, count, nil
}

// GetPantryTotals sums the scope's canonical stock per ingredient. Rows
// without canonical values are skipped; a canonical-unit clash between rows of
// the same ingredient keeps the first-seen unit and skips the clashing amount.
func (s *pantryService) GetPantryTotals(ctx context.Context, scope domain.Scope) (map[uuid.UUID]domain.CanonicalAmount, error) {
	items, err := s.pantryRepository.GetAllPantryItems(ctx, scope)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]domain.CanonicalAmount)
	for _, item := range items {
		if item.CanonicalQuantity == nil || item.CanonicalUnit == nil {
			continue
		}
		current, seen := totals[item.IngredientID]
		if seen && current.Unit != *item.CanonicalUnit {
			s.log.Warn("canonical unit clash while aggregating pantry, keeping first-seen unit",
				"ingredient_id", item.IngredientID,
				"first_unit", current.Unit, "clashing_unit", *item.CanonicalUnit)
			continue
		}
		totals[item.IngredientID] = domain.CanonicalAmount{
			Quantity: current.Quantity + *item.CanonicalQuantity,
			Unit:     *item.CanonicalUnit,
		}
	}
	return totals, nil
}

// GetPantryTotalsFlexible additionally accumulates raw display totals so
// callers can degrade to display-unit comparison when canonical data is
// missing. Canonical and display totals are accumulated independently.
func (s *pantryService) GetPantryTotalsFlexible(ctx context.Context, scope domain.Scope) (map[uuid.UUID]domain.PantryAvailability, error) {
	items, err := s.pantryRepository.GetAllPantryItems(ctx, scope)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]domain.PantryAvailability)
	for _, item := range items {
		entry := totals[item.IngredientID]

		if item.CanonicalQuantity != nil && item.CanonicalUnit != nil {
			if entry.CanonicalUnit != nil && *entry.CanonicalUnit != *item.CanonicalUnit {
				s.log.Warn("canonical unit clash while aggregating pantry, keeping first-seen unit",
					"ingredient_id", item.IngredientID,
					"first_unit", *entry.CanonicalUnit, "clashing_unit", *item.CanonicalUnit)
			} else {
				sum := *item.CanonicalQuantity
				if entry.CanonicalQuantity != nil {
					sum += *entry.CanonicalQuantity
				}
				unit := *item.CanonicalUnit
				entry.CanonicalQuantity = &sum
				entry.CanonicalUnit = &unit
			}
		}

		if item.Quantity != nil {
			displayUnit := units.NormalizeUnit(item.Unit)
			if displayUnit == "" || units.Classify(displayUnit) == units.TypeCount {
				displayUnit = units.BaseCount
			}
			switch {
			case entry.DisplayUnit == "":
				entry.DisplayUnit = displayUnit
				entry.DisplayQuantity = *item.Quantity
			case entry.DisplayUnit == displayUnit:
				entry.DisplayQuantity += *item.Quantity
			default:
				s.log.Warn("display unit clash while aggregating pantry, keeping first-seen unit",
					"ingredient_id", item.IngredientID,
					"first_unit", entry.DisplayUnit, "clashing_unit", displayUnit)
			}
		}

		totals[item.IngredientID] = entry
	}
	return totals, nil
}

// CreditPurchase folds a purchased grocery quantity into pantry stock:
// increments an existing row for the scope+ingredient or creates a new one.
// Unit mismatches are logged, never fatal.
func (s *pantryService) CreditPurchase(ctx context.Context, scope domain.Scope, ing *entities.Ingredient, canonicalQty *float64, canonicalUnit *string, displayQty *float64, displayUnit string) (*entities.PantryItem, error) {
	existing, err := s.pantryRepository.FindByScopeAndIngredient(ctx, scope, ing.ID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		familyID, ownerUserID := scope.IDs()
		item := &entities.PantryItem{
			ID:                uuid.New(),
			FamilyID:          familyID,
			OwnerUserID:       ownerUserID,
			IngredientID:      ing.ID,
			Quantity:          displayQty,
			Unit:              displayUnit,
			CanonicalQuantity: canonicalQty,
			CanonicalUnit:     canonicalUnit,
		}
		if err := s.pantryRepository.CreatePantryItem(ctx, item); err != nil {
			return nil, err
		}
		item.Ingredient = ing
		return item, nil
	}

	if canonicalQty != nil && canonicalUnit != nil {
		switch {
		case existing.CanonicalQuantity == nil || existing.CanonicalUnit == nil:
			existing.CanonicalQuantity = canonicalQty
			existing.CanonicalUnit = canonicalUnit
		case *existing.CanonicalUnit == *canonicalUnit:
			sum := *existing.CanonicalQuantity + *canonicalQty
			existing.CanonicalQuantity = &sum
		default:
			s.log.Warn("canonical unit mismatch while crediting purchase to pantry",
				"ingredient_id", ing.ID,
				"pantry_unit", *existing.CanonicalUnit, "purchase_unit", *canonicalUnit)
		}
	}

	if displayQty != nil {
		switch {
		case existing.Quantity == nil:
			existing.Quantity = displayQty
			existing.Unit = displayUnit
		case units.NormalizeUnit(existing.Unit) == units.NormalizeUnit(displayUnit):
			sum := *existing.Quantity + *displayQty
			existing.Quantity = &sum
		default:
			s.log.Warn("display unit mismatch while crediting purchase to pantry",
				"ingredient_id", ing.ID,
				"pantry_unit", existing.Unit, "purchase_unit", displayUnit)
		}
	}

	if err := s.pantryRepository.UpdatePantryItem(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *pantryService) GetPantryRow(ctx context.Context, scope domain.Scope, ingredientID string) (*entities.PantryItem, error) {
	item, err := s.pantryRepository.FindByScopeAndIngredient(ctx, scope, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPantryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *pantryService) WithTx(tx *gorm.DB) PantryService {
	return &pantryService{
		pantryRepository:     NewPantryRepository(tx),
		ingredientRepository: s.ingredientRepository,
		userRepository:       s.userRepository,
		normalizer:           s.normalizer,
		log:                  s.log,
	}
}

// applyCanonical derives the canonical pair at write time. Without quantity,
// unit and ingredient metadata all present, the pair is cleared.
func (s *pantryService) applyCanonical(item *entities.PantryItem, ing *entities.Ingredient) {
	item.CanonicalQuantity = nil
	item.CanonicalUnit = nil
	if ing == nil || item.Quantity == nil || item.Unit == "" {
		return
	}
	if ing.CanonicalUnitType == nil || ing.CanonicalUnit == nil {
		return
	}
	item.CanonicalQuantity, item.CanonicalUnit = s.normalizer.TryNormalize(ing, *item.Quantity, item.Unit)
}

func (s *pantryService) resolveRequestScope(ctx context.Context, familyID string, userID string) (domain.Scope, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Scope{}, domain.ErrParseUUID
	}
	if familyID == "" {
		return domain.PersonalScope(userUUID), nil
	}

	familyUUID, err := uuid.Parse(familyID)
	if err != nil {
		return domain.Scope{}, domain.ErrParseUUID
	}
	isMember, err := s.userRepository.IsFamilyMember(ctx, familyID, userID)
	if err != nil {
		return domain.Scope{}, err
	}
	if !isMember {
		return domain.Scope{}, domain.ErrNotFamilyMember
	}
	return domain.FamilyScope(familyUUID), nil
}

func (s *pantryService) authorizeItemAccess(ctx context.Context, item *entities.PantryItem, userID string) error {
	if item.OwnerUserID != nil {
		if item.OwnerUserID.String() != userID {
			return domain.ErrUnauthorizedAccess
		}
		return nil
	}
	if item.FamilyID != nil {
		isMember, err := s.userRepository.IsFamilyMember(ctx, item.FamilyID.String(), userID)
		if err != nil {
			return err
		}
		if !isMember {
			return domain.ErrUnauthorizedAccess
		}
		return nil
	}
	return domain.ErrInvalidPantryScope
}

func toPantryItemResponse(item *entities.PantryItem) domain.PantryItemResponse {
	res := domain.PantryItemResponse{
		ID:                item.ID.String(),
		IngredientID:      item.IngredientID.String(),
		Quantity:          item.Quantity,
		Unit:              item.Unit,
		Category:          item.Category,
		CanonicalQuantity: item.CanonicalQuantity,
		CanonicalUnit:     item.CanonicalUnit,
		CreatedAt:         item.CreatedAt,
	}
	if item.Ingredient != nil {
		res.IngredientName = item.Ingredient.Name
	}
	return res
}
