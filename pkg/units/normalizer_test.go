package units

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils/logger"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func weightIngredient() *entities.Ingredient {
	return &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "flour",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
		DensityGPerML:     f64Ptr(0.53),
	}
}

func TestNormalizeSameType(t *testing.T) {
	n := NewNormalizer(logger.NewNop())

	qty, unit, err := n.Normalize(weightIngredient(), 2, "kg")
	require.NoError(t, err)
	require.Equal(t, "g", unit)
	require.InDelta(t, 2000, qty, 1e-9)
}

func TestNormalizeNoMetadataPassesThrough(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	ing := &entities.Ingredient{ID: uuid.New(), Name: "saffron"}

	qty, unit, err := n.Normalize(ing, 2, "Pinches")
	require.NoError(t, err)
	require.Equal(t, "pinches", unit)
	require.InDelta(t, 2, qty, 1e-9)
}

func TestNormalizeVolumeToWeightViaDensity(t *testing.T) {
	n := NewNormalizer(logger.NewNop())

	// 1 cup of flour at 0.53 g/ml = 240 * 0.53 g
	qty, unit, err := n.Normalize(weightIngredient(), 1, "cup")
	require.NoError(t, err)
	require.Equal(t, "g", unit)
	require.InDelta(t, 127.2, qty, 1e-9)
}

func TestNormalizeCountToWeightViaAvgWeight(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	ing := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "egg",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
		AvgWeightPerUnitG: f64Ptr(60),
	}

	qty, unit, err := n.Normalize(ing, 3, "pieces")
	require.NoError(t, err)
	require.Equal(t, "g", unit)
	require.InDelta(t, 180, qty, 1e-9)
}

func TestNormalizeVolumeToCountComposesThroughGrams(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	ing := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "garlic",
		CanonicalUnitType: strPtr("count"),
		CanonicalUnit:     strPtr("count"),
		DensityGPerML:     f64Ptr(0.6),
		AvgWeightPerUnitG: f64Ptr(5),
	}

	// 1 tbsp = 15 ml → 9 g → 1.8 cloves
	qty, unit, err := n.Normalize(ing, 1, "tbsp")
	require.NoError(t, err)
	require.Equal(t, "count", unit)
	require.InDelta(t, 1.8, qty, 1e-9)
}

func TestNormalizeMissingDensity(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	ing := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "sugar",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
	}

	_, _, err := n.Normalize(ing, 1, "cup")
	require.ErrorIs(t, err, domain.ErrMissingDensity)
}

func TestNormalizeMissingAvgWeight(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	ing := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "onion",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
	}

	_, _, err := n.Normalize(ing, 2, "pieces")
	require.ErrorIs(t, err, domain.ErrMissingAvgWeight)
}

func TestNormalizeUnknownUnit(t *testing.T) {
	n := NewNormalizer(logger.NewNop())

	_, _, err := n.Normalize(weightIngredient(), 1, "bunch")
	require.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestTryNormalizeReturnsNilOnFailure(t *testing.T) {
	n := NewNormalizer(logger.NewNop())
	ing := &entities.Ingredient{
		ID:                uuid.New(),
		Name:              "sugar",
		CanonicalUnitType: strPtr("weight"),
		CanonicalUnit:     strPtr("g"),
	}

	qty, unit := n.TryNormalize(ing, 1, "cup")
	require.Nil(t, qty)
	require.Nil(t, unit)

	qty, unit = n.TryNormalize(ing, 500, "g")
	require.NotNil(t, qty)
	require.NotNil(t, unit)
	require.InDelta(t, 500, *qty, 1e-9)
	require.Equal(t, "g", *unit)
}
