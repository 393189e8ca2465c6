package mealplan

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/internal/utils/storage"
	"MealHive-Backend/pkg/ingredient"
	"MealHive-Backend/pkg/units"
	"MealHive-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MealPlanService interface {
		CreateMeal(ctx context.Context, req domain.CreateMealRequest, userID string) (string, error)
		UploadMealImage(ctx context.Context, req domain.UploadMealImageRequest, userID string) error
		CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, userID string) (domain.MealPlanResponse, error)
		GetMealPlans(ctx context.Context, userID string, familyID string, page, limit int) ([]domain.MealPlanResponse, int64, error)

		GetMealPlan(ctx context.Context, id string) (*entities.MealPlan, error)
		CalculateTotalNeeded(ctx context.Context, plan *entities.MealPlan) (map[uuid.UUID]domain.CanonicalAmount, error)
	}

	mealPlanService struct {
		mealPlanRepository   MealPlanRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		normalizer           *units.Normalizer
		s3                   storage.AwsS3
		log                  *logger.Logger
	}
)

func NewMealPlanService(
	mealPlanRepository MealPlanRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	normalizer *units.Normalizer,
	s3 storage.AwsS3,
	log *logger.Logger,
) MealPlanService {
	return &mealPlanService{
		mealPlanRepository:   mealPlanRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		normalizer:           normalizer,
		s3:                   s3,
		log:                  log,
	}
}

func (s *mealPlanService) CreateMeal(ctx context.Context, req domain.CreateMealRequest, userID string) (string, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	portions := req.Portions
	if portions < 1 {
		portions = 1
	}

	meal := &entities.Meal{
		ID:          uuid.New(),
		OwnerUserID: &userUUID,
		Name:        req.Name,
		Description: req.Description,
		Portions:    portions,
	}
	for _, ing := range req.Ingredients {
		meal.Ingredients = append(meal.Ingredients, &entities.MealIngredient{
			ID:         uuid.New(),
			MealID:     meal.ID,
			Name:       ing.Name,
			AmountText: ing.AmountText,
		})
	}

	if err := s.mealPlanRepository.CreateMeal(ctx, meal); err != nil {
		return "", err
	}
	return meal.ID.String(), nil
}

func (s *mealPlanService) UploadMealImage(ctx context.Context, req domain.UploadMealImageRequest, userID string) error {
	meal, err := s.mealPlanRepository.GetMealByID(ctx, req.MealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealNotFound
		}
		return err
	}

	if meal.OwnerUserID != nil && meal.OwnerUserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("meal-%s", meal.ID.String())
	var objectKey string
	if meal.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(meal.ImageURL)
		if existingKey != "" {
			objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fileName, req.Image, "meals", storage.AllowImage...)
		}
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "meals", storage.AllowImage...)
	}
	if err != nil {
		return err
	}

	meal.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.mealPlanRepository.UpdateMeal(ctx, meal)
}

func (s *mealPlanService) CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, userID string) (domain.MealPlanResponse, error) {
	scope, err := s.resolveRequestScope(ctx, req.FamilyID, userID)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	familyID, ownerUserID := scope.IDs()
	plan := &entities.MealPlan{
		ID:          uuid.New(),
		FamilyID:    familyID,
		OwnerUserID: ownerUserID,
		Name:        req.Name,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	for _, slotReq := range req.Slots {
		mealUUID, err := uuid.Parse(slotReq.MealID)
		if err != nil {
			return domain.MealPlanResponse{}, domain.ErrParseUUID
		}
		day, err := time.Parse("2006-01-02", slotReq.Day)
		if err != nil {
			return domain.MealPlanResponse{}, err
		}
		servings := slotReq.Servings
		if servings < 1 {
			servings = 1
		}
		plan.Slots = append(plan.Slots, &entities.MealPlanSlot{
			ID:         uuid.New(),
			MealPlanID: plan.ID,
			MealID:     mealUUID,
			Day:        day,
			SlotType:   slotReq.SlotType,
			Servings:   servings,
		})
	}

	if err := s.mealPlanRepository.CreateMealPlan(ctx, plan); err != nil {
		return domain.MealPlanResponse{}, err
	}
	return toMealPlanResponse(plan), nil
}

func (s *mealPlanService) GetMealPlans(ctx context.Context, userID string, familyID string, page, limit int) ([]domain.MealPlanResponse, int64, error) {
	scope, err := s.resolveRequestScope(ctx, familyID, userID)
	if err != nil {
		return nil, 0, err
	}

	plans, count, err := s.mealPlanRepository.GetMealPlans(ctx, scope, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.MealPlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, toMealPlanResponse(plan))
	}
	return responses, count, nil
}

func (s *mealPlanService) GetMealPlan(ctx context.Context, id string) (*entities.MealPlan, error) {
	plan, err := s.mealPlanRepository.GetMealPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMealPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// CalculateTotalNeeded walks the plan's slots and accumulates canonical
// ingredient totals. Each slot contributes servings × meal portions as a
// multiplier. Unparseable or unnormalizable lines are skipped with a warning;
// only ingredients with at least one normalized occurrence are returned.
func (s *mealPlanService) CalculateTotalNeeded(ctx context.Context, plan *entities.MealPlan) (map[uuid.UUID]domain.CanonicalAmount, error) {
	totals := make(map[uuid.UUID]domain.CanonicalAmount)

	for _, slot := range plan.Slots {
		if slot.Meal == nil {
			continue
		}

		servings := slot.Servings
		if servings < 1 {
			servings = 1
		}
		portions := slot.Meal.Portions
		if portions < 1 {
			portions = 1
		}
		multiplier := float64(servings * portions)

		for _, line := range slot.Meal.Ingredients {
			ing, err := s.ingredientRepository.FindOrCreateByName(ctx, line.Name)
			if err != nil {
				return nil, err
			}

			qty, unit := units.ParseAmount(line.AmountText)
			if qty == nil || unit == nil {
				s.log.Warn("unparseable ingredient amount, skipping occurrence",
					"meal_id", slot.MealID, "ingredient_name", line.Name,
					"amount_text", line.AmountText)
				continue
			}

			canonicalQty, canonicalUnit := s.normalizer.TryNormalize(ing, *qty*multiplier, *unit)
			if canonicalQty == nil || canonicalUnit == nil {
				continue
			}

			current, seen := totals[ing.ID]
			if seen && current.Unit != *canonicalUnit {
				s.log.Warn("canonical unit clash while accumulating needs, keeping first-seen unit",
					"ingredient_id", ing.ID,
					"first_unit", current.Unit, "clashing_unit", *canonicalUnit)
				continue
			}
			totals[ing.ID] = domain.CanonicalAmount{
				Quantity: current.Quantity + *canonicalQty,
				Unit:     *canonicalUnit,
			}
		}
	}

	return totals, nil
}

func (s *mealPlanService) resolveRequestScope(ctx context.Context, familyID string, userID string) (domain.Scope, error) {
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

func toMealPlanResponse(plan *entities.MealPlan) domain.MealPlanResponse {
	res := domain.MealPlanResponse{
		ID:        plan.ID.String(),
		Name:      plan.Name,
		StartDate: plan.StartDate,
		EndDate:   plan.EndDate,
	}
	if plan.FamilyID != nil {
		familyID := plan.FamilyID.String()
		res.FamilyID = &familyID
	}
	for _, slot := range plan.Slots {
		slotRes := domain.MealPlanSlotResponse{
			ID:       slot.ID.String(),
			MealID:   slot.MealID.String(),
			Day:      slot.Day,
			SlotType: slot.SlotType,
			Servings: slot.Servings,
		}
		if slot.Meal != nil {
			slotRes.MealName = slot.Meal.Name
		}
		res.Slots = append(res.Slots, slotRes)
	}
	return res
}
