// Package format provides display formatting for ruble amounts and month counts.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/avdeyev/mortgage-planner/pkg/constants"
)

// Ruble returns a whole-ruble currency string with space thousands separators
// and a ruble sign (e.g., "-1 234 567 ₽").
func Ruble(amount float64) string {
	formatted := groupDigits(math.Abs(math.Round(amount)))
	if amount < 0 {
		return "-" + formatted + " ₽"
	}
	return formatted + " ₽"
}

// NumericRuble returns a whole-ruble string with separators but no currency
// sign (e.g., "-1 234 567").
func NumericRuble(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + groupDigits(math.Abs(math.Round(amount)))
}

// Percent formats an annual percentage rate for display (e.g., "16.5%").
func Percent(rate float64) string {
	s := fmt.Sprintf("%.2f", rate)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}

// Months renders a month count as years and months (e.g., "2 г. 5 мес.").
// The infeasible sentinel must never reach a formatter as a duration, so it
// renders as an explicit "not reachable" marker instead.
func Months(months int) string {
	if months == constants.InfeasibleMonths {
		return "недостижимо"
	}
	if months < 0 {
		return fmt.Sprintf("%d мес.", months)
	}

	years := months / constants.MonthsPerYear
	remainder := months % constants.MonthsPerYear
	switch {
	case years == 0:
		return fmt.Sprintf("%d мес.", remainder)
	case remainder == 0:
		return fmt.Sprintf("%d г.", years)
	default:
		return fmt.Sprintf("%d г. %d мес.", years, remainder)
	}
}

func groupDigits(value float64) string {
	intPart := fmt.Sprintf("%.0f", value)

	if len(intPart) <= 3 {
		return intPart
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(' ')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
