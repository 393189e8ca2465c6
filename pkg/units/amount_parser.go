package units

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalAmountPattern  = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?$`)
	fractionAmountPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\s*([a-zA-Z]+)?$`)
)

// ParseAmount extracts (quantity, unit) from loosely structured amount text
// such as "2 cups", "500g" or "1/2 tsp". Bare numbers default to unit "count".
// Unparseable text returns (nil, nil); callers must treat that as "quantity
// unknown", never as zero.
func ParseAmount(text string) (*float64, *string) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, nil
	}

	if m := fractionAmountPattern.FindStringSubmatch(t); m != nil {
		numerator, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, nil
		}
		denominator, err := strconv.ParseFloat(m[2], 64)
		if err != nil || denominator == 0 {
			return nil, nil
		}
		quantity := numerator / denominator
		unit := unitOrCount(m[3])
		return &quantity, &unit
	}

	if m := decimalAmountPattern.FindStringSubmatch(t); m != nil {
		quantity, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			return nil, nil
		}
		unit := unitOrCount(m[2])
		return &quantity, &unit
	}

	return nil, nil
}

func unitOrCount(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return BaseCount
	}
	return NormalizeUnit(raw)
}
