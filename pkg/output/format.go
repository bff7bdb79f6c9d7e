// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/avdeyev/mortgage-planner/internal/engine"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/avdeyev/mortgage-planner/pkg/datetime"
	"github.com/avdeyev/mortgage-planner/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable summary and projection table.
func PrettyFormat(results engine.Results) {
	p := message.NewPrinter(language.Russian)

	fmt.Printf("--- Прогноз накоплений и ипотеки ---\n")
	fmt.Printf("Будущая стоимость квартиры:     %s\n", format.Ruble(results.FutureApartmentPrice))
	fmt.Printf("Первоначальный взнос:           %s\n", format.Ruble(results.DownPaymentRequired))
	fmt.Printf("Срок накопления на взнос:       %s\n", format.Months(results.MonthsToDownPayment))
	fmt.Printf("Срок накопления полной суммы:   %s\n", format.Months(results.MonthsToFullPrice))
	fmt.Printf("Ежемесячный платёж по ипотеке:  %s\n", format.Ruble(results.MonthlyMortgagePayment))
	fmt.Printf("Общая сумма выплат:             %s\n", format.Ruble(results.TotalMortgagePayment))
	fmt.Printf("Переплата по ипотеке:           %s\n", format.Ruble(results.MortgageOverpayment))
	fmt.Printf("Рекомендуемое накопление (%d мес.): %s\n",
		constants.RecommendedSavingsHorizonMonths, format.Ruble(results.RecommendedMonthlySavings))
	fmt.Printf("Накоплено к моменту взноса:     %s\n", format.Ruble(results.ProjectedSavingsAtDownPayment))

	if len(results.MonthlyProjection) == 0 {
		return
	}

	fmt.Printf("\nМесяц | Цена квартиры | Накопления | Взнос/мес | Цель взноса | Запас\n")
	fmt.Printf("_____ | _____________ | __________ | _________ | ___________ | _____\n")
	for _, point := range results.MonthlyProjection {
		_, _ = p.Printf("%5d | %13.0f | %10.0f | %9.0f | %11.0f | %.0f\n",
			point.Month, point.ApartmentPrice, point.TotalSavings,
			point.MonthlySavings, point.DownPaymentTarget, point.Surplus)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results engine.Results) {
	fmt.Print(CsvString(results))
}

// CsvString renders the projection table as CSV with calendar labels starting
// at the current month.
func CsvString(results engine.Results) string {
	return CsvStringFrom(results, time.Now())
}

// CsvStringFrom renders the projection table as CSV with calendar labels
// counted from the given reference month.
func CsvStringFrom(results engine.Results, reference time.Time) string {
	var builder strings.Builder

	builder.WriteString(`"date","month","apartmentPrice","totalSavings","monthlyContribution","downPaymentTarget","surplus"`)
	builder.WriteString("\n")
	for _, point := range results.MonthlyProjection {
		fmt.Fprintf(&builder, `"%s","%d","%.0f","%.0f","%.0f","%.0f","%.0f"`,
			datetime.MonthLabel(reference, point.Month), point.Month,
			point.ApartmentPrice, point.TotalSavings, point.MonthlySavings,
			point.DownPaymentTarget, point.Surplus)
		builder.WriteString("\n")
	}

	return builder.String()
}
