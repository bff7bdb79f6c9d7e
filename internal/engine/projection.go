package engine

import (
	"github.com/avdeyev/mortgage-planner/pkg/mathutil"
)

// ProjectionPoint captures the state of the model at one month of the
// projection horizon. Surplus is TotalSavings minus DownPaymentTarget and may
// be negative.
type ProjectionPoint struct {
	Month             int     `json:"month"`
	ApartmentPrice    float64 `json:"apartmentPrice"`
	TotalSavings      float64 `json:"totalSavings"`
	MonthlySavings    float64 `json:"monthlySavings"`
	DownPaymentTarget float64 `json:"downPaymentTarget"`
	Surplus           float64 `json:"surplus"`
}

// GenerateProjection re-runs the accumulation recurrence over the full fixed
// horizon, recording every intermediate month rather than searching for a
// termination point. It returns maxMonths+1 points; point 0 reproduces the
// unmodified input price and contribution. The table always covers the whole
// horizon even when the down-payment target is reached earlier.
func GenerateProjection(in Inputs, maxMonths int) []ProjectionPoint {
	priceRate := mathutil.MonthlyRate(in.PriceGrowthRate)
	interestRate := mathutil.MonthlyRate(in.SavingsInterestRate)
	growthRate := mathutil.MonthlyRate(in.SalaryGrowthRate)

	points := make([]ProjectionPoint, 0, maxMonths+1)

	price := in.ApartmentPrice
	balance := in.InitialSavings
	contribution := in.MonthlySavings

	target := mathutil.ApplyPercentage(price, in.DownPaymentPercent)
	points = append(points, ProjectionPoint{
		Month:             0,
		ApartmentPrice:    price,
		TotalSavings:      balance,
		MonthlySavings:    contribution,
		DownPaymentTarget: target,
		Surplus:           balance - target,
	})

	for month := 1; month <= maxMonths; month++ {
		balance *= 1.0 + interestRate
		balance += contribution
		added := contribution
		contribution *= 1.0 + growthRate
		price *= 1.0 + priceRate

		target = mathutil.ApplyPercentage(price, in.DownPaymentPercent)
		points = append(points, ProjectionPoint{
			Month:             month,
			ApartmentPrice:    price,
			TotalSavings:      balance,
			MonthlySavings:    added,
			DownPaymentTarget: target,
			Surplus:           balance - target,
		})
	}

	return points
}
