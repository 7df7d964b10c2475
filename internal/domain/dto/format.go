package dto

import (
	"fmt"
	"strconv"
)

// FormatPrice renders a price with two decimals, e.g. "101.50".
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPct renders a percentage with an explicit sign, e.g. "+3.25%".
func FormatPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func formatPctPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatPct(*v)
}
