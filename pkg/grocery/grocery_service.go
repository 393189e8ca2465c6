package grocery

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/internal/utils/mailing"
	"MealHive-Backend/pkg/ingredient"
	"MealHive-Backend/pkg/mealplan"
	"MealHive-Backend/pkg/pantry"
	"MealHive-Backend/pkg/units"
	"MealHive-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	GroceryService interface {
		CreateGroceryList(ctx context.Context, req domain.CreateGroceryListRequest, userID string) (domain.GroceryListResponse, error)
		GetGroceryLists(ctx context.Context, userID string, familyID string, page, limit int) ([]domain.GroceryListResponse, int64, error)
		AddManualItem(ctx context.Context, listID string, req domain.AddGroceryItemRequest, userID string) (domain.GroceryItemResponse, error)
		ToggleItemChecked(ctx context.Context, itemID string, userID string) (domain.GroceryItemResponse, error)
		DeleteItem(ctx context.Context, itemID string, userID string) error
		ShareList(ctx context.Context, listID string, req domain.ShareGroceryListRequest, userID string) error

		SyncListWithPantry(ctx context.Context, listID string, userID string) (domain.SyncResult, error)
		RebuildFromMealPlan(ctx context.Context, mealPlanID string, userID string) (domain.GroceryListResponse, error)
		MarkItemPurchased(ctx context.Context, itemID string, userID string) (domain.MarkPurchasedResponse, error)
	}

	groceryService struct {
		groceryRepository    GroceryRepository
		pantryService        pantry.PantryService
		mealPlanService      mealplan.MealPlanService
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		normalizer           *units.Normalizer
		log                  *logger.Logger
	}
)

func NewGroceryService(
	groceryRepository GroceryRepository,
	pantryService pantry.PantryService,
	mealPlanService mealplan.MealPlanService,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	normalizer *units.Normalizer,
	log *logger.Logger,
) GroceryService {
	return &groceryService{
		groceryRepository:    groceryRepository,
		pantryService:        pantryService,
		mealPlanService:      mealPlanService,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		normalizer:           normalizer,
		log:                  log,
	}
}

func (s *groceryService) CreateGroceryList(ctx context.Context, req domain.CreateGroceryListRequest, userID string) (domain.GroceryListResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.GroceryListResponse{}, domain.ErrParseUUID
	}

	list := &entities.GroceryList{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if req.FamilyID != "" {
		familyUUID, err := uuid.Parse(req.FamilyID)
		if err != nil {
			return domain.GroceryListResponse{}, domain.ErrParseUUID
		}
		isMember, err := s.userRepository.IsFamilyMember(ctx, req.FamilyID, userID)
		if err != nil {
			return domain.GroceryListResponse{}, err
		}
		if !isMember {
			return domain.GroceryListResponse{}, domain.ErrNotFamilyMember
		}
		list.FamilyID = &familyUUID
	} else {
		list.OwnerUserID = &userUUID
	}

	if req.MealPlanID != "" {
		planUUID, err := uuid.Parse(req.MealPlanID)
		if err != nil {
			return domain.GroceryListResponse{}, domain.ErrParseUUID
		}
		list.MealPlanID = &planUUID
	}

	if err := s.groceryRepository.CreateGroceryList(ctx, list); err != nil {
		return domain.GroceryListResponse{}, err
	}
	return toGroceryListResponse(list), nil
}

func (s *groceryService) GetGroceryLists(ctx context.Context, userID string, familyID string, page, limit int) ([]domain.GroceryListResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	scope := domain.PersonalScope(userUUID)
	if familyID != "" {
		familyUUID, err := uuid.Parse(familyID)
		if err != nil {
			return nil, 0, domain.ErrParseUUID
		}
		isMember, err := s.userRepository.IsFamilyMember(ctx, familyID, userID)
		if err != nil {
			return nil, 0, err
		}
		if !isMember {
			return nil, 0, domain.ErrNotFamilyMember
		}
		scope = domain.FamilyScope(familyUUID)
	}

	lists, count, err := s.groceryRepository.GetGroceryLists(ctx, scope, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.GroceryListResponse, 0, len(lists))
	for _, list := range lists {
		responses = append(responses, toGroceryListResponse(list))
	}
	return responses, count, nil
}

func (s *groceryService) AddManualItem(ctx context.Context, listID string, req domain.AddGroceryItemRequest, userID string) (domain.GroceryItemResponse, error) {
	list, err := s.loadAuthorizedList(ctx, listID, userID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	ing, err := s.ingredientRepository.FindOrCreateByName(ctx, req.IngredientName)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	item := &entities.GroceryListItem{
		ID:            uuid.New(),
		GroceryListID: list.ID,
		IngredientID:  ing.ID,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Note:          req.Note,
		IsManual:      true,
	}
	if req.Quantity != nil && req.Unit != "" {
		item.CanonicalQuantityNeeded, item.CanonicalUnit = s.normalizer.TryNormalize(ing, *req.Quantity, req.Unit)
	}

	if err := s.groceryRepository.CreateGroceryItem(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}
	item.Ingredient = ing
	return toGroceryItemResponse(item), nil
}

func (s *groceryService) ToggleItemChecked(ctx context.Context, itemID string, userID string) (domain.GroceryItemResponse, error) {
	item, err := s.loadAuthorizedItem(ctx, itemID, userID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	// Purchased items are terminal: they already credited the pantry and must
	// not drift back into the to-buy state.
	if item.IsPurchased {
		return toGroceryItemResponse(item), nil
	}

	item.Checked = !item.Checked
	if err := s.groceryRepository.UpdateGroceryItem(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}
	return toGroceryItemResponse(item), nil
}

func (s *groceryService) DeleteItem(ctx context.Context, itemID string, userID string) error {
	item, err := s.loadAuthorizedItem(ctx, itemID, userID)
	if err != nil {
		return err
	}
	return s.groceryRepository.DeleteGroceryItem(ctx, item.ID.String())
}

func (s *groceryService) ShareList(ctx context.Context, listID string, req domain.ShareGroceryListRequest, userID string) error {
	list, err := s.loadAuthorizedList(ctx, listID, userID)
	if err != nil {
		return err
	}

	var lines strings.Builder
	lines.WriteString(fmt.Sprintf("<p>Shopping list <b>%s</b>:</p><ul>", list.Name))
	for _, item := range list.Items {
		if item.Checked || item.IsPurchased {
			continue
		}
		name := ""
		if item.Ingredient != nil {
			name = item.Ingredient.Name
		}
		if item.Quantity != nil {
			lines.WriteString(fmt.Sprintf("<li>%s — %g %s</li>", name, *item.Quantity, item.Unit))
		} else if item.Note != "" {
			lines.WriteString(fmt.Sprintf("<li>%s (%s)</li>", name, item.Note))
		} else {
			lines.WriteString(fmt.Sprintf("<li>%s</li>", name))
		}
	}
	lines.WriteString("</ul>")

	return mailing.SendMail(req.Email, fmt.Sprintf("Shopping list: %s", list.Name), lines.String())
}

// ResolvePantryScope decides which pantry a list reconciles against: family
// lists use the family pantry; a personal list whose owner belongs to a family
// also uses the family pantry, falling back to the owner's personal pantry.
func (s *groceryService) ResolvePantryScope(ctx context.Context, list *entities.GroceryList) (domain.Scope, error) {
	if list.FamilyID != nil {
		return domain.FamilyScope(*list.FamilyID), nil
	}
	if list.OwnerUserID == nil {
		return domain.Scope{}, domain.ErrInvalidScope
	}

	family, err := s.userRepository.GetFamilyByUserID(ctx, list.OwnerUserID.String())
	if err == nil {
		return domain.FamilyScope(family.ID), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Scope{}, err
	}
	return domain.PersonalScope(*list.OwnerUserID), nil
}

// ComputeRemainingToBuy subtracts pantry availability from needed totals.
// A canonical-unit mismatch keeps the full needed amount: never guess a
// conversion, never tell the user they have more than they do.
func (s *groceryService) ComputeRemainingToBuy(needed, available map[uuid.UUID]domain.CanonicalAmount) map[uuid.UUID]domain.CanonicalAmount {
	remaining := make(map[uuid.UUID]domain.CanonicalAmount)
	for ingredientID, need := range needed {
		avail, inPantry := available[ingredientID]
		if !inPantry {
			remaining[ingredientID] = need
			continue
		}
		if avail.Unit != need.Unit {
			s.log.Warn("canonical unit mismatch between needs and pantry, keeping full needed amount",
				"ingredient_id", ingredientID,
				"needed_unit", need.Unit, "pantry_unit", avail.Unit)
			remaining[ingredientID] = need
			continue
		}
		if left := need.Quantity - avail.Quantity; left > 0 {
			remaining[ingredientID] = domain.CanonicalAmount{Quantity: left, Unit: need.Unit}
		}
	}
	return remaining
}

// canonicalSource is one strategy for establishing a grocery item's canonical
// (quantity, unit) pair.
type canonicalSource func(item *entities.GroceryListItem) (*float64, *string)

// canonicalForItem runs the ordered fallback chain: stored canonical value,
// then normalization of the display pair, then parsing the free-text note.
func (s *groceryService) canonicalForItem(item *entities.GroceryListItem) (*float64, *string) {
	sources := []canonicalSource{
		s.storedCanonical,
		s.normalizedDisplay,
		s.parsedNote,
	}
	for _, source := range sources {
		if qty, unit := source(item); qty != nil && unit != nil {
			return qty, unit
		}
	}
	return nil, nil
}

func (s *groceryService) storedCanonical(item *entities.GroceryListItem) (*float64, *string) {
	return item.CanonicalQuantityNeeded, item.CanonicalUnit
}

func (s *groceryService) normalizedDisplay(item *entities.GroceryListItem) (*float64, *string) {
	if item.Quantity == nil || item.Unit == "" || item.Ingredient == nil {
		return nil, nil
	}
	return s.normalizer.TryNormalize(item.Ingredient, *item.Quantity, item.Unit)
}

func (s *groceryService) parsedNote(item *entities.GroceryListItem) (*float64, *string) {
	if item.Note == "" || item.Ingredient == nil {
		return nil, nil
	}
	qty, unit := units.ParseAmount(item.Note)
	if qty == nil || unit == nil {
		return nil, nil
	}
	return s.normalizer.TryNormalize(item.Ingredient, *qty, *unit)
}

// SyncListWithPantry walks every unchecked item on the list and subtracts
// pantry stock: fully covered items are removed, partially covered items are
// reduced, everything else is kept. All mutations commit atomically and the
// list timestamp is bumped exactly once.
func (s *groceryService) SyncListWithPantry(ctx context.Context, listID string, userID string) (domain.SyncResult, error) {
	list, err := s.loadAuthorizedList(ctx, listID, userID)
	if err != nil {
		return domain.SyncResult{}, err
	}

	scope, err := s.ResolvePantryScope(ctx, list)
	if err != nil {
		return domain.SyncResult{}, err
	}

	pantryTotals, err := s.pantryService.GetPantryTotalsFlexible(ctx, scope)
	if err != nil {
		return domain.SyncResult{}, err
	}

	result := domain.SyncResult{Remaining: []domain.ItemSummary{}}

	err = s.groceryRepository.WithTransaction(ctx, func(txRepo GroceryRepository, _ *gorm.DB) error {
		for _, item := range list.Items {
			if item.Checked || item.IsPurchased {
				continue
			}

			qty, unit := s.canonicalForItem(item)
			if qty == nil || unit == nil {
				// No canonical value could be established; keep the line as-is
				// rather than dropping user data.
				result.Remaining = append(result.Remaining, toItemSummary(item, false))
				continue
			}

			pantryQty, pantryUnit, inPantry := pantryAvailability(pantryTotals, item.IngredientID)
			if !inPantry {
				result.Remaining = append(result.Remaining, toItemSummary(item, false))
				continue
			}

			if pantryUnit != *unit {
				s.log.Warn("unit mismatch between grocery item and pantry, keeping item",
					"ingredient_id", item.IngredientID,
					"grocery_unit", *unit, "pantry_unit", pantryUnit)
				result.Remaining = append(result.Remaining, toItemSummary(item, true))
				continue
			}

			left := *qty - pantryQty
			switch {
			case left <= 0:
				if err := txRepo.DeleteGroceryItem(ctx, item.ID.String()); err != nil {
					return err
				}
				result.ItemsRemoved++
			case left < *qty:
				displayQty, displayUnit := FormatForDisplay(left, *unit)
				item.Quantity = &displayQty
				item.Unit = displayUnit
				item.CanonicalQuantityNeeded = &left
				item.CanonicalUnit = unit
				if err := txRepo.UpdateGroceryItem(ctx, item); err != nil {
					return err
				}
				result.ItemsUpdated++
				result.Remaining = append(result.Remaining, toItemSummary(item, false))
			default:
				result.Remaining = append(result.Remaining, toItemSummary(item, false))
			}
		}

		return txRepo.TouchGroceryList(ctx, list.ID.String())
	})
	if err != nil {
		return domain.SyncResult{}, err
	}

	updated, err := s.groceryRepository.GetGroceryListByID(ctx, listID)
	if err != nil {
		return domain.SyncResult{}, err
	}
	result.List = toGroceryListResponse(updated)
	return result, nil
}

// RebuildFromMealPlan recomputes the plan's needs, subtracts pantry stock and
// replaces the auto-generated lines of the linked grocery list. Manual and
// purchased lines survive, and their ingredients are not regenerated.
func (s *groceryService) RebuildFromMealPlan(ctx context.Context, mealPlanID string, userID string) (domain.GroceryListResponse, error) {
	plan, err := s.mealPlanService.GetMealPlan(ctx, mealPlanID)
	if err != nil {
		return domain.GroceryListResponse{}, err
	}

	if err := s.authorizeScopeAccess(ctx, plan.FamilyID, plan.OwnerUserID, userID); err != nil {
		return domain.GroceryListResponse{}, err
	}

	list, err := s.groceryRepository.GetGroceryListByMealPlanID(ctx, mealPlanID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GroceryListResponse{}, err
		}
		planID := plan.ID
		list = &entities.GroceryList{
			ID:          uuid.New(),
			FamilyID:    plan.FamilyID,
			OwnerUserID: plan.OwnerUserID,
			Name:        plan.Name,
			MealPlanID:  &planID,
		}
		if err := s.groceryRepository.CreateGroceryList(ctx, list); err != nil {
			return domain.GroceryListResponse{}, err
		}
	}

	needed, err := s.mealPlanService.CalculateTotalNeeded(ctx, plan)
	if err != nil {
		return domain.GroceryListResponse{}, err
	}

	scope, err := s.ResolvePantryScope(ctx, list)
	if err != nil {
		return domain.GroceryListResponse{}, err
	}
	available, err := s.pantryService.GetPantryTotals(ctx, scope)
	if err != nil {
		return domain.GroceryListResponse{}, err
	}

	remaining := s.ComputeRemainingToBuy(needed, available)

	// Ingredients already covered by surviving lines are skipped to avoid
	// duplicate rows for the same ingredient.
	covered := make(map[uuid.UUID]bool)
	for _, item := range list.Items {
		if item.IsManual || item.IsPurchased || item.SourceMealPlanID == nil || *item.SourceMealPlanID != plan.ID {
			covered[item.IngredientID] = true
		}
	}

	err = s.groceryRepository.WithTransaction(ctx, func(txRepo GroceryRepository, _ *gorm.DB) error {
		if err := txRepo.DeleteGeneratedItems(ctx, list.ID.String(), plan.ID.String()); err != nil {
			return err
		}

		for ingredientID, amount := range remaining {
			if covered[ingredientID] {
				continue
			}
			displayQty, displayUnit := FormatForDisplay(amount.Quantity, amount.Unit)
			canonicalQty := amount.Quantity
			canonicalUnit := amount.Unit
			planID := plan.ID
			item := &entities.GroceryListItem{
				ID:                      uuid.New(),
				GroceryListID:           list.ID,
				IngredientID:            ingredientID,
				Quantity:                &displayQty,
				Unit:                    displayUnit,
				CanonicalQuantityNeeded: &canonicalQty,
				CanonicalUnit:           &canonicalUnit,
				SourceMealPlanID:        &planID,
			}
			if err := txRepo.CreateGroceryItem(ctx, item); err != nil {
				return err
			}
		}

		return txRepo.TouchGroceryList(ctx, list.ID.String())
	})
	if err != nil {
		return domain.GroceryListResponse{}, err
	}

	updated, err := s.groceryRepository.GetGroceryListByID(ctx, list.ID.String())
	if err != nil {
		return domain.GroceryListResponse{}, err
	}
	return toGroceryListResponse(updated), nil
}

// MarkItemPurchased flags the item purchased and credits its quantity to the
// pantry. Idempotent: a second call returns the current state without crediting
// the pantry again.
func (s *groceryService) MarkItemPurchased(ctx context.Context, itemID string, userID string) (domain.MarkPurchasedResponse, error) {
	item, err := s.loadAuthorizedItem(ctx, itemID, userID)
	if err != nil {
		return domain.MarkPurchasedResponse{}, err
	}

	scope, err := s.ResolvePantryScope(ctx, item.GroceryList)
	if err != nil {
		return domain.MarkPurchasedResponse{}, err
	}

	if item.IsPurchased {
		res := domain.MarkPurchasedResponse{Item: toGroceryItemResponse(item)}
		if row, err := s.pantryService.GetPantryRow(ctx, scope, item.IngredientID.String()); err == nil {
			res.PantryItem = toPantryRowResponse(row)
		}
		return res, nil
	}

	var pantryRow *entities.PantryItem
	err = s.groceryRepository.WithTransaction(ctx, func(txRepo GroceryRepository, tx *gorm.DB) error {
		item.IsPurchased = true
		item.Checked = true
		if err := txRepo.UpdateGroceryItem(ctx, item); err != nil {
			return err
		}

		row, err := s.pantryService.WithTx(tx).CreditPurchase(ctx, scope, item.Ingredient,
			item.CanonicalQuantityNeeded, item.CanonicalUnit, item.Quantity, item.Unit)
		if err != nil {
			return err
		}
		pantryRow = row
		return nil
	})
	if err != nil {
		return domain.MarkPurchasedResponse{}, err
	}

	return domain.MarkPurchasedResponse{
		Item:       toGroceryItemResponse(item),
		PantryItem: toPantryRowResponse(pantryRow),
	}, nil
}

func pantryAvailability(totals map[uuid.UUID]domain.PantryAvailability, ingredientID uuid.UUID) (float64, string, bool) {
	avail, ok := totals[ingredientID]
	if !ok {
		return 0, "", false
	}
	if avail.CanonicalQuantity != nil && avail.CanonicalUnit != nil {
		return *avail.CanonicalQuantity, *avail.CanonicalUnit, true
	}
	if avail.DisplayUnit != "" {
		return avail.DisplayQuantity, avail.DisplayUnit, true
	}
	return 0, "", false
}

func (s *groceryService) loadAuthorizedList(ctx context.Context, listID string, userID string) (*entities.GroceryList, error) {
	list, err := s.groceryRepository.GetGroceryListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroceryListNotFound
		}
		return nil, err
	}
	if err := s.authorizeScopeAccess(ctx, list.FamilyID, list.OwnerUserID, userID); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *groceryService) loadAuthorizedItem(ctx context.Context, itemID string, userID string) (*entities.GroceryListItem, error) {
	item, err := s.groceryRepository.GetGroceryItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroceryItemNotFound
		}
		return nil, err
	}
	if item.GroceryList == nil {
		return nil, domain.ErrGroceryListNotFound
	}
	if err := s.authorizeScopeAccess(ctx, item.GroceryList.FamilyID, item.GroceryList.OwnerUserID, userID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *groceryService) authorizeScopeAccess(ctx context.Context, familyID, ownerUserID *uuid.UUID, userID string) error {
	if familyID != nil {
		isMember, err := s.userRepository.IsFamilyMember(ctx, familyID.String(), userID)
		if err != nil {
			return err
		}
		if !isMember {
			return domain.ErrUnauthorizedAccess
		}
		return nil
	}
	if ownerUserID != nil && ownerUserID.String() == userID {
		return nil
	}
	return domain.ErrUnauthorizedAccess
}

func toItemSummary(item *entities.GroceryListItem, mismatch bool) domain.ItemSummary {
	summary := domain.ItemSummary{
		IngredientID:      item.IngredientID.String(),
		Quantity:          item.Quantity,
		UnitCode:          item.Unit,
		CanonicalQuantity: item.CanonicalQuantityNeeded,
		CanonicalUnit:     item.CanonicalUnit,
		Note:              item.Note,
		UnitMismatch:      mismatch,
	}
	if item.Ingredient != nil {
		summary.IngredientName = item.Ingredient.Name
	}
	return summary
}

func toGroceryItemResponse(item *entities.GroceryListItem) domain.GroceryItemResponse {
	res := domain.GroceryItemResponse{
		ID:                      item.ID.String(),
		IngredientID:            item.IngredientID.String(),
		Quantity:                item.Quantity,
		Unit:                    item.Unit,
		Checked:                 item.Checked,
		Note:                    item.Note,
		IsPurchased:             item.IsPurchased,
		IsManual:                item.IsManual,
		CanonicalQuantityNeeded: item.CanonicalQuantityNeeded,
		CanonicalUnit:           item.CanonicalUnit,
	}
	if item.Ingredient != nil {
		res.IngredientName = item.Ingredient.Name
	}
	return res
}

func toGroceryListResponse(list *entities.GroceryList) domain.GroceryListResponse {
	res := domain.GroceryListResponse{
		ID:        list.ID.String(),
		Name:      list.Name,
		Items:     []domain.GroceryItemResponse{},
		UpdatedAt: list.UpdatedAt,
	}
	if list.FamilyID != nil {
		familyID := list.FamilyID.String()
		res.FamilyID = &familyID
	}
	if list.MealPlanID != nil {
		planID := list.MealPlanID.String()
		res.MealPlanID = &planID
	}
	for _, item := range list.Items {
		res.Items = append(res.Items, toGroceryItemResponse(item))
	}
	return res
}

func toPantryRowResponse(row *entities.PantryItem) domain.PantryItemResponse {
	if row == nil {
		return domain.PantryItemResponse{}
	}
	res := domain.PantryItemResponse{
		ID:                row.ID.String(),
		IngredientID:      row.IngredientID.String(),
		Quantity:          row.Quantity,
		Unit:              row.Unit,
		Category:          row.Category,
		CanonicalQuantity: row.CanonicalQuantity,
		CanonicalUnit:     row.CanonicalUnit,
		CreatedAt:         row.CreatedAt,
	}
	if row.Ingredient != nil {
		res.IngredientName = row.Ingredient.Name
	}
	return res
}
