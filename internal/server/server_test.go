package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avdeyev/mortgage-planner/internal/engine"
	"github.com/avdeyev/mortgage-planner/internal/feeds/cbr"
	"github.com/avdeyev/mortgage-planner/internal/feeds/market"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMarket struct {
	snapshot market.Snapshot
	gotType  market.PropertyType
}

func (s *stubMarket) Snapshot(ctx context.Context, propertyType market.PropertyType, period market.Period) market.Snapshot {
	s.gotType = propertyType
	return s.snapshot
}

type stubRates struct {
	rates cbr.Rates
}

func (s *stubRates) Rates(ctx context.Context) cbr.Rates {
	return s.rates
}

func newTestHandler() (http.Handler, *stubMarket, *stubRates) {
	marketFeed := &stubMarket{snapshot: market.Snapshot{
		NewBuilding: 270_000,
		Resale:      256_000,
		History:     []market.HistoryPoint{{Date: "2026-07", NewBuilding: 270_000, Resale: 256_000}},
	}}
	rateFeed := &stubRates{rates: cbr.Rates{KeyRate: 16, InflationRate: 7.4}}
	return NewHandler(nil, "1.2.3", marketFeed, rateFeed), marketFeed, rateFeed
}

func TestHandleCalculate(t *testing.T) {
	h, _, _ := newTestHandler()

	body := `{
		"apartmentPrice": 10000000,
		"priceGrowthRate": 8,
		"salary": 150000,
		"salaryGrowthRate": 5,
		"monthlySavings": 50000,
		"initialSavings": 0,
		"savingsInterestRate": 10,
		"mortgageRate": 18,
		"downPaymentPercent": 20,
		"mortgageTerm": 20
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response struct {
		engine.Results
		Duration string `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Greater(t, response.MonthsToDownPayment, 0)
	assert.Less(t, response.MonthsToDownPayment, constants.SearchHorizonMonths)
	assert.Greater(t, response.MortgageOverpayment, 0.0)
	assert.Len(t, response.MonthlyProjection, constants.ProjectionHorizonMonths+1)
	assert.NotEmpty(t, response.Duration)
}

func TestHandleCalculateInfeasibleSentinelPassesThrough(t *testing.T) {
	h, _, _ := newTestHandler()

	body := `{"apartmentPrice": 10000000, "priceGrowthRate": 8, "downPaymentPercent": 20, "mortgageTerm": 20}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response engine.Results
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, constants.InfeasibleMonths, response.MonthsToDownPayment)
}

func TestHandleCalculateBadJSON(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "failed to decode inputs")
}

func TestHandleCalculateRejectsUnknownFields(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"unknownField": 1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCalculateMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/calculate", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleDefaults(t *testing.T) {
	h, marketFeed, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/defaults?type=resale&period=month", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, market.PropertyResale, marketFeed.gotType)

	var response struct {
		Inputs engine.Inputs   `json:"inputs"`
		Market market.Snapshot `json:"market"`
		Rates  cbr.Rates       `json:"rates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	// Live figures overlay the static defaults.
	assert.Equal(t, 270_000.0*constants.DefaultApartmentArea, response.Inputs.ApartmentPrice)
	assert.Equal(t, 16.0, response.Inputs.SavingsInterestRate)
	assert.Equal(t, 7.4, response.Inputs.PriceGrowthRate)
	// Untouched defaults survive.
	assert.Equal(t, constants.DefaultMortgageTermYears, response.Inputs.MortgageTerm)

	assert.Equal(t, 256_000.0, response.Market.Resale)
	assert.Equal(t, 16.0, response.Rates.KeyRate)
}

func TestHandleVersion(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "1.2.3", response["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	h, _, _ := newTestHandler()

	// Generate one instrumented request first.
	body := `{"apartmentPrice": 1000000, "monthlySavings": 50000, "downPaymentPercent": 20, "mortgageTerm": 10}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mortgage_planner_requests_total")
}
