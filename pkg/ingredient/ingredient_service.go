package ingredient

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/pkg/units"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, search string, page, limit int) ([]domain.IngredientResponse, int64, error)
		GetIngredientByID(ctx context.Context, id string) (domain.IngredientResponse, error)
		UpdateIngredientMetadata(ctx context.Context, id string, req domain.UpdateIngredientMetadataRequest) (domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, search string, page, limit int) ([]domain.IngredientResponse, int64, error) {
	ingredients, count, err := s.ingredientRepository.GetIngredients(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		responses = append(responses, toIngredientResponse(ing))
	}
	return responses, count, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ing, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ing), nil
}

// UpdateIngredientMetadata back-fills canonical-unit metadata. The canonical
// unit must belong to the declared canonical unit type.
func (s *ingredientService) UpdateIngredientMetadata(ctx context.Context, id string, req domain.UpdateIngredientMetadataRequest) (domain.IngredientResponse, error) {
	ing, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	if req.Category != "" {
		ing.Category = req.Category
	}

	if req.CanonicalUnitType != "" {
		if req.CanonicalUnit == "" {
			return domain.IngredientResponse{}, domain.ErrCanonicalUnitRequired
		}
		if units.Classify(req.CanonicalUnit) != units.UnitType(req.CanonicalUnitType) {
			return domain.IngredientResponse{}, domain.ErrInvalidCanonicalUnit
		}
		unitType := req.CanonicalUnitType
		unit := units.NormalizeUnit(req.CanonicalUnit)
		ing.CanonicalUnitType = &unitType
		ing.CanonicalUnit = &unit
	}

	if req.AvgWeightPerUnitG != nil {
		if *req.AvgWeightPerUnitG <= 0 {
			return domain.IngredientResponse{}, domain.ErrInvalidConversionValue
		}
		ing.AvgWeightPerUnitG = req.AvgWeightPerUnitG
	}
	if req.DensityGPerML != nil {
		if *req.DensityGPerML <= 0 {
			return domain.IngredientResponse{}, domain.ErrInvalidConversionValue
		}
		ing.DensityGPerML = req.DensityGPerML
	}
	if req.PiecesPerPackage != nil {
		ing.PiecesPerPackage = req.PiecesPerPackage
	}

	if err := s.ingredientRepository.UpdateIngredient(ctx, ing); err != nil {
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ing), nil
}

func toIngredientResponse(ing *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:                ing.ID.String(),
		Name:              ing.Name,
		Category:          ing.Category,
		CanonicalUnitType: ing.CanonicalUnitType,
		CanonicalUnit:     ing.CanonicalUnit,
		AvgWeightPerUnitG: ing.AvgWeightPerUnitG,
		DensityGPerML:     ing.DensityGPerML,
		PiecesPerPackage:  ing.PiecesPerPackage,
	}
}
