package grocery

import (
	"math"

	"MealHive-Backend/pkg/units"
)

// FormatForDisplay turns a canonical quantity into a human-scale display pair:
// grams roll up to kilograms at 1000, milliliters to liters, counts round up
// to whole pieces. Unknown units pass through with two-decimal rounding.
func FormatForDisplay(quantity float64, unit string) (float64, string) {
	switch units.NormalizeUnit(unit) {
	case units.BaseWeight:
		if quantity >= 1000 {
			return roundTo(quantity/1000, 2), "kg"
		}
		return roundTo(quantity, 1), "g"
	case units.BaseVolume:
		if quantity >= 1000 {
			return roundTo(quantity/1000, 2), "l"
		}
		return roundTo(quantity, 1), "ml"
	case units.BaseCount:
		return math.Ceil(quantity), "pcs"
	default:
		return roundTo(quantity, 2), unit
	}
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
