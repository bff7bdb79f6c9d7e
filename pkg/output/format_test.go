package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/avdeyev/mortgage-planner/internal/engine"
	"github.com/avdeyev/mortgage-planner/pkg/datetime"
)

func sampleResults() engine.Results {
	return engine.Results{
		FutureApartmentPrice:          12_000_000,
		DownPaymentRequired:           2_400_000,
		MonthsToDownPayment:           29,
		MonthsToFullPrice:             180,
		MonthlyMortgagePayment:        148_000,
		TotalMortgagePayment:          35_520_000,
		MortgageOverpayment:           25_920_000,
		RecommendedMonthlySavings:     91_000,
		ProjectedSavingsAtDownPayment: 2_450_000,
		MonthlyProjection: []engine.ProjectionPoint{
			{Month: 0, ApartmentPrice: 10_000_000, TotalSavings: 0, MonthlySavings: 50_000, DownPaymentTarget: 2_000_000, Surplus: -2_000_000},
			{Month: 1, ApartmentPrice: 10_066_667, TotalSavings: 50_000, MonthlySavings: 50_000, DownPaymentTarget: 2_013_333, Surplus: -1_963_333},
		},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat(sampleResults())
	})

	if !strings.Contains(output, "--- Прогноз накоплений и ипотеки ---") {
		t.Error("PrettyFormat missing header")
	}
	if !strings.Contains(output, "12 000 000 ₽") {
		t.Error("PrettyFormat missing grouped future price")
	}
	if !strings.Contains(output, "2 г. 5 мес.") {
		t.Error("PrettyFormat missing formatted months-to-down-payment")
	}
	if !strings.Contains(output, "Месяц | Цена квартиры") {
		t.Error("PrettyFormat missing projection table header")
	}
}

func TestPrettyFormatInfeasible(t *testing.T) {
	results := sampleResults()
	results.MonthsToDownPayment = -1
	results.MonthsToFullPrice = -1

	output := captureStdout(t, func() {
		PrettyFormat(results)
	})

	if !strings.Contains(output, "недостижимо") {
		t.Error("PrettyFormat should render the infeasible sentinel as a marker, not a duration")
	}
	if strings.Contains(output, "-1 мес.") {
		t.Error("PrettyFormat must never format the sentinel as a month count")
	}
}

func TestCsvStringFrom(t *testing.T) {
	reference := datetime.MustParseTime(datetime.DateTimeLayout, "2026-08")
	csv := CsvStringFrom(sampleResults(), reference)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 3 {
		t.Fatalf("CsvStringFrom produced %d lines, expected header plus 2 rows", len(lines))
	}

	if lines[0] != `"date","month","apartmentPrice","totalSavings","monthlyContribution","downPaymentTarget","surplus"` {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"2026-08","0","10000000"`) {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], `"2026-09","1","10066667"`) {
		t.Errorf("unexpected second row: %s", lines[2])
	}
}

func TestCsvFormatMatchesCsvString(t *testing.T) {
	results := sampleResults()

	output := captureStdout(t, func() {
		CsvFormat(results)
	})

	// Labels derive from the current month in both paths; a midnight month
	// rollover between the two calls is the only way they could differ.
	if output != CsvString(results) {
		t.Errorf("CsvFormat and CsvString output mismatch\nCsvFormat:\n%s\nCsvString:\n%s", output, CsvString(results))
	}
}
