package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeUnitResolvesSynonyms(t *testing.T) {
	cases := map[string]string{
		"Grams":       "g",
		" KG ":        "kg",
		"pounds":      "lb",
		"tablespoons": "tbsp",
		"tbs":         "tbsp",
		"pcs":         "count",
		"x":           "count",
		"litres":      "l",
		"ml":          "ml",
		"bunch":       "bunch", // unknown spellings pass through cleaned
	}
	for input, want := range cases {
		require.Equal(t, want, NormalizeUnit(input), "input %q", input)
	}
}

func TestClassify(t *testing.T) {
	require.Equal(t, TypeWeight, Classify("KG"))
	require.Equal(t, TypeWeight, Classify("ounces"))
	require.Equal(t, TypeVolume, Classify("cup"))
	require.Equal(t, TypeVolume, Classify("teaspoons"))
	require.Equal(t, TypeCount, Classify("pieces"))
	require.Equal(t, TypeCount, Classify("ea"))
	require.Equal(t, TypeUnknown, Classify("bunch"))
}

func TestToBaseWeight(t *testing.T) {
	qty, unit, err := ToBase(2, "kg")
	require.NoError(t, err)
	require.Equal(t, BaseWeight, unit)
	require.InDelta(t, 2000, qty, 1e-9)

	qty, unit, err = ToBase(1, "lb")
	require.NoError(t, err)
	require.Equal(t, BaseWeight, unit)
	require.InDelta(t, 453.592, qty, 1e-9)

	qty, _, err = ToBase(2, "oz")
	require.NoError(t, err)
	require.InDelta(t, 56.699, qty, 1e-9)
}

func TestToBaseVolume(t *testing.T) {
	qty, unit, err := ToBase(2, "cups")
	require.NoError(t, err)
	require.Equal(t, BaseVolume, unit)
	require.InDelta(t, 480, qty, 1e-9)

	qty, _, err = ToBase(3, "tsp")
	require.NoError(t, err)
	require.InDelta(t, 15, qty, 1e-9)

	qty, _, err = ToBase(1, "tbsp")
	require.NoError(t, err)
	require.InDelta(t, 15, qty, 1e-9)
}

func TestToBaseCountIsIdentity(t *testing.T) {
	qty, unit, err := ToBase(4, "pieces")
	require.NoError(t, err)
	require.Equal(t, BaseCount, unit)
	require.InDelta(t, 4, qty, 1e-9)
}

func TestToBaseUnknownUnit(t *testing.T) {
	_, _, err := ToBase(1, "bunch")
	require.Error(t, err)
}

func TestFromBaseRoundTrip(t *testing.T) {
	base, _, err := ToBase(1.5, "kg")
	require.NoError(t, err)
	back, err := FromBase(base, "kg")
	require.NoError(t, err)
	require.InDelta(t, 1.5, back, 1e-9)

	base, _, err = ToBase(2, "cup")
	require.NoError(t, err)
	back, err = FromBase(base, "cup")
	require.NoError(t, err)
	require.InDelta(t, 2, back, 1e-9)
}
