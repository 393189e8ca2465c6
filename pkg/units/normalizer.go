package units

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
)

// Normalizer converts (quantity, unit) pairs into an ingredient's canonical
// unit, using the static tables plus per-ingredient density / average-weight
// metadata.
type Normalizer struct {
	log *logger.Logger
}

func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize converts quantity+unit into the ingredient's canonical unit.
// Ingredients without canonical metadata pass the value through unchanged so
// unmodeled ingredients never block the pipeline.
func (n *Normalizer) Normalize(ingredient *entities.Ingredient, quantity float64, unit string) (float64, string, error) {
	if ingredient.CanonicalUnitType == nil || ingredient.CanonicalUnit == nil {
		n.log.Warn("ingredient has no canonical unit metadata, passing value through",
			"ingredient_id", ingredient.ID, "ingredient_name", ingredient.Name,
			"quantity", quantity, "unit", unit)
		return quantity, NormalizeUnit(unit), nil
	}

	baseQty, baseUnit, err := ToBase(quantity, unit)
	if err != nil {
		return 0, "", domain.ErrUnknownUnit
	}

	canonicalType := UnitType(*ingredient.CanonicalUnitType)
	canonicalUnit := *ingredient.CanonicalUnit

	if typeOfBase(baseUnit) == canonicalType {
		return baseQty, canonicalUnit, nil
	}

	converted, err := n.convertAcrossTypes(ingredient, baseQty, typeOfBase(baseUnit), canonicalType)
	if err != nil {
		return 0, "", err
	}
	return converted, canonicalUnit, nil
}

// TryNormalize is the non-raising variant for bulk paths: any failure returns
// (nil, nil) after logging, so one bad ingredient never aborts a calculation.
func (n *Normalizer) TryNormalize(ingredient *entities.Ingredient, quantity float64, unit string) (*float64, *string) {
	qty, canonicalUnit, err := n.Normalize(ingredient, quantity, unit)
	if err != nil {
		n.log.Warn("normalization failed, skipping",
			"ingredient_id", ingredient.ID, "ingredient_name", ingredient.Name,
			"quantity", quantity, "unit", unit, "error", err)
		return nil, nil
	}
	return &qty, &canonicalUnit
}

func typeOfBase(baseUnit string) UnitType {
	switch baseUnit {
	case BaseWeight:
		return TypeWeight
	case BaseVolume:
		return TypeVolume
	default:
		return TypeCount
	}
}

// convertAcrossTypes bridges between unit types through ingredient metadata.
// Volume↔count composes through grams, so it needs both density and average
// weight.
func (n *Normalizer) convertAcrossTypes(ingredient *entities.Ingredient, baseQty float64, from, to UnitType) (float64, error) {
	grams, err := n.toGrams(ingredient, baseQty, from)
	if err != nil {
		return 0, err
	}
	return n.fromGrams(ingredient, grams, to)
}

func (n *Normalizer) toGrams(ingredient *entities.Ingredient, baseQty float64, from UnitType) (float64, error) {
	switch from {
	case TypeWeight:
		return baseQty, nil
	case TypeVolume:
		if ingredient.DensityGPerML == nil || *ingredient.DensityGPerML <= 0 {
			return 0, domain.ErrMissingDensity
		}
		return baseQty * *ingredient.DensityGPerML, nil
	default: // count
		if ingredient.AvgWeightPerUnitG == nil || *ingredient.AvgWeightPerUnitG <= 0 {
			return 0, domain.ErrMissingAvgWeight
		}
		return baseQty * *ingredient.AvgWeightPerUnitG, nil
	}
}

func (n *Normalizer) fromGrams(ingredient *entities.Ingredient, grams float64, to UnitType) (float64, error) {
	switch to {
	case TypeWeight:
		return grams, nil
	case TypeVolume:
		if ingredient.DensityGPerML == nil || *ingredient.DensityGPerML <= 0 {
			return 0, domain.ErrMissingDensity
		}
		return grams / *ingredient.DensityGPerML, nil
	default: // count
		if ingredient.AvgWeightPerUnitG == nil || *ingredient.AvgWeightPerUnitG <= 0 {
			return 0, domain.ErrMissingAvgWeight
		}
		return grams / *ingredient.AvgWeightPerUnitG, nil
	}
}
