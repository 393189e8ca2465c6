package units

import (
	"fmt"
	"strings"
)

// UnitType is the category a unit belongs to: weight, volume or count.
type UnitType string

const (
	TypeWeight  UnitType = "weight"
	TypeVolume  UnitType = "volume"
	TypeCount   UnitType = "count"
	TypeUnknown UnitType = "unknown"
)

// Base units per type.
const (
	BaseWeight = "g"
	BaseVolume = "ml"
	BaseCount  = "count"
)

// weightToGrams and volumeToMilliliters are the static conversion tables.
var weightToGrams = map[string]float64{
	"g":  1,
	"kg": 1000,
	"lb": 453.592,
	"oz": 28.3495,
}

var volumeToMilliliters = map[string]float64{
	"ml":   1,
	"l":    1000,
	"cup":  240,
	"tbsp": 15,
	"tsp":  5,
}

// countUnits is the identity-conversion count vocabulary.
var countUnits = map[string]struct{}{
	"count":  {},
	"piece":  {},
	"pieces": {},
	"unit":   {},
	"units":  {},
	"each":   {},
	"ea":     {},
}

// synonyms maps plural and abbreviated unit spellings onto table keys.
var synonyms = map[string]string{
	"gram":        "g",
	"grams":       "g",
	"gr":          "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kgs":         "kg",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
	"ounce":       "oz",
	"ounces":      "oz",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"cups":        "cup",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbs":         "tbsp",
	"tb":          "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"pc":          "count",
	"pcs":         "count",
	"x":           "count",
}

// NormalizeUnit lowercases, trims and resolves synonyms. It returns the
// table spelling, or the cleaned input unchanged when no synonym matches.
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := synonyms[u]; ok {
		return canonical
	}
	return u
}

// Classify reports which category a unit string belongs to. Lookup is
// case- and whitespace-insensitive and synonym-aware.
func Classify(unit string) UnitType {
	u := NormalizeUnit(unit)
	if _, ok := weightToGrams[u]; ok {
		return TypeWeight
	}
	if _, ok := volumeToMilliliters[u]; ok {
		return TypeVolume
	}
	if _, ok := countUnits[u]; ok {
		return TypeCount
	}
	return TypeUnknown
}

// ToBase converts a quantity to its type's base unit: grams for weight,
// milliliters for volume, count for count.
func ToBase(quantity float64, unit string) (float64, string, error) {
	u := NormalizeUnit(unit)
	if factor, ok := weightToGrams[u]; ok {
		return quantity * factor, BaseWeight, nil
	}
	if factor, ok := volumeToMilliliters[u]; ok {
		return quantity * factor, BaseVolume, nil
	}
	if _, ok := countUnits[u]; ok {
		return quantity, BaseCount, nil
	}
	return 0, "", fmt.Errorf("unknown unit %q", unit)
}

// FromBase converts a base-unit quantity into the given unit of the same type.
func FromBase(quantity float64, unit string) (float64, error) {
	u := NormalizeUnit(unit)
	if factor, ok := weightToGrams[u]; ok {
		return quantity / factor, nil
	}
	if factor, ok := volumeToMilliliters[u]; ok {
		return quantity / factor, nil
	}
	if _, ok := countUnits[u]; ok {
		return quantity, nil
	}
	return 0, fmt.Errorf("unknown unit %q", unit)
}
