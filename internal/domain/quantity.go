package domain

import (
	"strconv"
	"strings"
)

// DisplayQuantity renders quantity*multiplier, promoting grams and ml to
// kg and liter at 1000 and above.
func DisplayQuantity(quantity float64, unit Unit, multiplier int) string {
	total := quantity * float64(multiplier)
	switch {
	case unit == UnitGrams && total >= 1000:
		return formatAmount(total/1000) + " kg"
	case unit == UnitMl && total >= 1000:
		return formatAmount(total/1000) + " liter"
	}
	return formatAmount(total) + " " + string(unit)
}

func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
