// Package server exposes the projection engine and the live-data defaults
// over an HTTP API consumed by the browser UI.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avdeyev/mortgage-planner/internal/engine"
	"github.com/avdeyev/mortgage-planner/internal/feeds/cbr"
	"github.com/avdeyev/mortgage-planner/internal/feeds/market"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/avdeyev/mortgage-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// MarketFeed supplies price-per-square-meter snapshots. Implementations must
// degrade internally instead of failing.
type MarketFeed interface {
	Snapshot(ctx context.Context, propertyType market.PropertyType, period market.Period) market.Snapshot
}

// RateFeed supplies central-bank indicators with the same no-failure contract.
type RateFeed interface {
	Rates(ctx context.Context) cbr.Rates
}

type handler struct {
	logger  *zap.Logger
	version string
	market  MarketFeed
	rates   RateFeed
	metrics *metrics
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, version string, marketFeed MarketFeed, rateFeed RateFeed) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:  logger,
		version: trimmedVersion,
		market:  marketFeed,
		rates:   rateFeed,
		metrics: newMetrics(),
	}

	mux := http.NewServeMux()

	// Calculation API endpoint
	mux.HandleFunc("/api/calculate", h.metrics.instrument("/api/calculate", h.handleCalculate))

	// Pre-populated defaults backed by the live feeds
	mux.HandleFunc("/api/defaults", h.metrics.instrument("/api/defaults", h.handleDefaults))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Prometheus metrics
	mux.Handle("/metrics", h.metrics.handler())

	return mux
}

type calculateResponse struct {
	engine.Results
	Duration string `json:"duration"`
}

type defaultsResponse struct {
	Inputs engine.Inputs   `json:"inputs"`
	Market market.Snapshot `json:"market"`
	Rates  cbr.Rates       `json:"rates"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var inputs engine.Inputs
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&inputs); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), "server.handleCalculate")
		return
	}

	results := engine.Calculate(h.logger, inputs)
	elapsed := time.Since(start)

	h.logger.Info("calculation served",
		zap.String("op", "server.handleCalculate"),
		zap.Int("monthsToDownPayment", results.MonthsToDownPayment),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Results:  results,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	propertyType := market.PropertyType(r.URL.Query().Get("type"))
	if propertyType == "" {
		propertyType = market.PropertyAll
	}
	period := market.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = market.PeriodYear
	}

	// The two fetches are independent; each degrades to its own fallback, so
	// this endpoint always succeeds.
	snapshot := h.market.Snapshot(r.Context(), propertyType, period)
	rates := h.rates.Rates(r.Context())

	inputs := engine.DefaultInputs()
	inputs.ApartmentPrice = mathutil.RoundRuble(snapshot.NewBuilding * constants.DefaultApartmentArea)
	inputs.SavingsInterestRate = rates.KeyRate
	inputs.PriceGrowthRate = rates.InflationRate

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		Inputs: inputs,
		Market: snapshot,
		Rates:  rates,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
