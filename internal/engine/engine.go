// Package engine implements the financial projection model: compound growth
// of price, salary, and interest-bearing savings over discrete monthly steps,
// the annuity mortgage payment, and the orchestration that assembles the
// calculator results from those primitives.
package engine

import (
	"math"

	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/avdeyev/mortgage-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// Inputs holds the user-supplied parameters for one calculation. All rates are
// annual percentages; amounts are rubles. The engine performs no validation:
// callers are responsible for supplying sane values.
type Inputs struct {
	ApartmentPrice      float64 `json:"apartmentPrice" yaml:"apartmentPrice"`
	PriceGrowthRate     float64 `json:"priceGrowthRate" yaml:"priceGrowthRate"`
	Salary              float64 `json:"salary" yaml:"salary"`
	SalaryGrowthRate    float64 `json:"salaryGrowthRate" yaml:"salaryGrowthRate"`
	MonthlySavings      float64 `json:"monthlySavings" yaml:"monthlySavings"`
	InitialSavings      float64 `json:"initialSavings" yaml:"initialSavings"`
	SavingsInterestRate float64 `json:"savingsInterestRate" yaml:"savingsInterestRate"`
	MortgageRate        float64 `json:"mortgageRate" yaml:"mortgageRate"`
	DownPaymentPercent  float64 `json:"downPaymentPercent" yaml:"downPaymentPercent"`
	MortgageTerm        int     `json:"mortgageTerm" yaml:"mortgageTerm"` // years
}

// Results holds the derived projections for one calculation. Whole-ruble
// rounding is applied here and nowhere inside the recurrences.
// MonthsToDownPayment and MonthsToFullPrice carry constants.InfeasibleMonths
// when the target cannot be reached within the search horizon; consumers must
// branch on the sentinel rather than format it as a duration.
type Results struct {
	FutureApartmentPrice          float64           `json:"futureApartmentPrice"`
	DownPaymentRequired           float64           `json:"downPaymentRequired"`
	MonthsToDownPayment           int               `json:"monthsToDownPayment"`
	MonthsToFullPrice             int               `json:"monthsToFullPrice"`
	MonthlyMortgagePayment        float64           `json:"monthlyMortgagePayment"`
	TotalMortgagePayment          float64           `json:"totalMortgagePayment"`
	MortgageOverpayment           float64           `json:"mortgageOverpayment"`
	RecommendedMonthlySavings     float64           `json:"recommendedMonthlySavings"`
	ProjectedSavingsAtDownPayment float64           `json:"projectedSavingsAtDownPayment"`
	MonthlyProjection             []ProjectionPoint `json:"monthlyProjection"`
}

// DefaultInputs returns the baseline inputs used when neither configuration
// nor live market data is available.
func DefaultInputs() Inputs {
	return Inputs{
		ApartmentPrice:      constants.DefaultApartmentPrice,
		PriceGrowthRate:     constants.DefaultPriceGrowthRate,
		Salary:              constants.DefaultSalary,
		SalaryGrowthRate:    constants.DefaultSalaryGrowthRate,
		MonthlySavings:      constants.DefaultMonthlySavings,
		InitialSavings:      constants.DefaultInitialSavings,
		SavingsInterestRate: constants.DefaultSavingsInterestRate,
		MortgageRate:        constants.DefaultMortgageRate,
		DownPaymentPercent:  constants.DefaultDownPaymentPercent,
		MortgageTerm:        constants.DefaultMortgageTermYears,
	}
}

// FuturePrice compounds a price at the given annual growth rate over the given
// number of months. The monthly rate is the annual percentage divided by 12;
// zero months returns the price unchanged, negative rates model decline.
func FuturePrice(price, annualGrowthRate float64, months int) float64 {
	monthlyRate := mathutil.MonthlyRate(annualGrowthRate)
	return price * math.Pow(1.0+monthlyRate, float64(months))
}

// Accumulate simulates a savings balance month by month. Each month interest
// is applied to the running balance before the contribution is added (the
// current month's contribution earns no interest that month), then the
// contribution grows at the monthly salary-growth rate. This ordering is a
// fixed policy of the model.
func Accumulate(monthlyContribution, annualSalaryGrowth float64, months int, initialBalance, annualInterestRate float64) float64 {
	interestRate := mathutil.MonthlyRate(annualInterestRate)
	growthRate := mathutil.MonthlyRate(annualSalaryGrowth)

	balance := initialBalance
	contribution := monthlyContribution
	for month := 0; month < months; month++ {
		balance *= 1.0 + interestRate
		balance += contribution
		contribution *= 1.0 + growthRate
	}
	return balance
}

// MonthsToTarget finds the smallest month count at which accumulated savings
// meet or exceed a moving target: targetPercent of the apartment price, with
// the price itself appreciating each month. Returns 0 when the initial
// savings already cover the month-0 target, and constants.InfeasibleMonths
// when the target is not reached within constants.SearchHorizonMonths.
func MonthsToTarget(price, priceGrowthRate, monthlySavings, salaryGrowthRate, targetPercent, initialSavings, savingsInterestRate float64) int {
	target := mathutil.ApplyPercentage(price, targetPercent)
	if initialSavings >= target {
		return 0
	}

	priceRate := mathutil.MonthlyRate(priceGrowthRate)
	interestRate := mathutil.MonthlyRate(savingsInterestRate)
	growthRate := mathutil.MonthlyRate(salaryGrowthRate)

	balance := initialSavings
	contribution := monthlySavings
	currentPrice := price
	for month := 1; month <= constants.SearchHorizonMonths; month++ {
		balance *= 1.0 + interestRate
		balance += contribution
		contribution *= 1.0 + growthRate
		currentPrice *= 1.0 + priceRate
		if balance >= mathutil.ApplyPercentage(currentPrice, targetPercent) {
			return month
		}
	}
	return constants.InfeasibleMonths
}

// MonthlyMortgagePayment calculates the fixed monthly payment that fully
// amortizes the principal over the term using the standard annuity formula.
// A zero rate divides the principal evenly over the payment count, since the
// annuity denominator vanishes at r=0.
func MonthlyMortgagePayment(principal, annualRate float64, termYears int) float64 {
	numPayments := termYears * constants.MonthsPerYear
	if numPayments <= 0 {
		return 0
	}
	if annualRate == 0 {
		return principal / float64(numPayments)
	}

	monthlyRate := mathutil.MonthlyRate(annualRate)
	power := math.Pow(1.0+monthlyRate, float64(numPayments))
	return principal * monthlyRate * power / (power - 1.0)
}

// RecommendedMonthlySavings back-solves the flat initial monthly contribution
// that reaches the down-payment target within targetMonths, assuming the
// contribution grows with salary each month. Savings interest is deliberately
// not modeled here, unlike MonthsToTarget: the answer is "what starting
// contribution, growing with my salary, suffices" without assuming investment
// returns.
func RecommendedMonthlySavings(price, priceGrowthRate, salaryGrowthRate float64, targetMonths int, downPaymentPercent float64) float64 {
	futureTarget := mathutil.ApplyPercentage(FuturePrice(price, priceGrowthRate, targetMonths), downPaymentPercent)

	growthFactor := 1.0 + mathutil.MonthlyRate(salaryGrowthRate)
	if growthFactor == 1.0 {
		return futureTarget / float64(targetMonths)
	}
	// Geometric sum of growthFactor^i for i in 0..targetMonths-1.
	multiplier := (math.Pow(growthFactor, float64(targetMonths)) - 1.0) / (growthFactor - 1.0)
	return futureTarget / multiplier
}

// Calculate composes the model primitives into the full calculator results.
// It is a stateless pure computation; every invocation is independent. When a
// savings target is infeasible the sentinel passes through untouched and the
// current price substitutes for the future price so the result is still
// well-formed.
func Calculate(logger *zap.Logger, in Inputs) Results {
	if logger == nil {
		logger = zap.NewNop()
	}

	monthsToDownPayment := MonthsToTarget(in.ApartmentPrice, in.PriceGrowthRate, in.MonthlySavings,
		in.SalaryGrowthRate, in.DownPaymentPercent, in.InitialSavings, in.SavingsInterestRate)
	monthsToFullPrice := MonthsToTarget(in.ApartmentPrice, in.PriceGrowthRate, in.MonthlySavings,
		in.SalaryGrowthRate, constants.FullPricePercent, in.InitialSavings, in.SavingsInterestRate)

	futurePrice := in.ApartmentPrice
	if monthsToDownPayment > 0 {
		futurePrice = FuturePrice(in.ApartmentPrice, in.PriceGrowthRate, monthsToDownPayment)
	}
	if monthsToDownPayment == constants.InfeasibleMonths {
		logger.Debug("down payment target not reachable within search horizon, using current price",
			zap.String("op", "engine.Calculate"),
			zap.Float64("apartmentPrice", in.ApartmentPrice),
		)
	}

	downPayment := mathutil.ApplyPercentage(futurePrice, in.DownPaymentPercent)
	loanAmount := futurePrice - downPayment

	monthlyPayment := MonthlyMortgagePayment(loanAmount, in.MortgageRate, in.MortgageTerm)
	totalPayment := monthlyPayment * float64(in.MortgageTerm*constants.MonthsPerYear)
	overpayment := totalPayment - loanAmount

	recommended := RecommendedMonthlySavings(in.ApartmentPrice, in.PriceGrowthRate, in.SalaryGrowthRate,
		constants.RecommendedSavingsHorizonMonths, in.DownPaymentPercent)

	savingsMonths := monthsToDownPayment
	if savingsMonths < 0 {
		savingsMonths = 0
	}
	projectedSavings := Accumulate(in.MonthlySavings, in.SalaryGrowthRate, savingsMonths,
		in.InitialSavings, in.SavingsInterestRate)

	projection := GenerateProjection(in, constants.ProjectionHorizonMonths)
	for i := range projection {
		projection[i].ApartmentPrice = mathutil.RoundRuble(projection[i].ApartmentPrice)
		projection[i].TotalSavings = mathutil.RoundRuble(projection[i].TotalSavings)
		projection[i].MonthlySavings = mathutil.RoundRuble(projection[i].MonthlySavings)
		projection[i].DownPaymentTarget = mathutil.RoundRuble(projection[i].DownPaymentTarget)
		projection[i].Surplus = mathutil.RoundRuble(projection[i].Surplus)
	}

	logger.Debug("calculation complete",
		zap.String("op", "engine.Calculate"),
		zap.Int("monthsToDownPayment", monthsToDownPayment),
		zap.Int("monthsToFullPrice", monthsToFullPrice),
		zap.Float64("monthlyPayment", monthlyPayment),
	)

	return Results{
		FutureApartmentPrice:          mathutil.RoundRuble(futurePrice),
		DownPaymentRequired:           mathutil.RoundRuble(downPayment),
		MonthsToDownPayment:           monthsToDownPayment,
		MonthsToFullPrice:             monthsToFullPrice,
		MonthlyMortgagePayment:        mathutil.RoundRuble(monthlyPayment),
		TotalMortgagePayment:          mathutil.RoundRuble(totalPayment),
		MortgageOverpayment:           mathutil.RoundRuble(overpayment),
		RecommendedMonthlySavings:     mathutil.RoundRuble(recommended),
		ProjectedSavingsAtDownPayment: mathutil.RoundRuble(projectedSavings),
		MonthlyProjection:             projection,
	}
}
