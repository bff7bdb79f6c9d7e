// Package market fetches price-per-square-meter data for the residential
// market. The feed is advisory: it pre-populates calculator defaults, and
// every failure path degrades to static fallback figures instead of
// surfacing an error.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avdeyev/mortgage-planner/internal/feeds"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/avdeyev/mortgage-planner/pkg/datetime"
	"go.uber.org/zap"
)

// PropertyType selects the market segment filter for a snapshot request.
type PropertyType string

const (
	PropertyAll    PropertyType = "all"
	PropertyNew    PropertyType = "new"
	PropertyResale PropertyType = "resale"
)

// Period selects how much history the snapshot covers.
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// HistoryPoint is one dated observation of the per-square-meter price for
// both segments.
type HistoryPoint struct {
	Date        string  `json:"date"` // YYYY-MM
	NewBuilding float64 `json:"newBuilding"`
	Resale      float64 `json:"resale"`
}

// Snapshot holds the latest per-square-meter prices and the dated history
// series behind them.
type Snapshot struct {
	NewBuilding float64        `json:"newBuilding"`
	Resale      float64        `json:"resale"`
	History     []HistoryPoint `json:"history"`
	Fallback    bool           `json:"fallback,omitempty"`
}

// Client fetches market snapshots over HTTP with an optional cache in front.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      feeds.Cache
	logger     *zap.Logger
}

// NewClient constructs a market feed client. A nil cache disables caching.
func NewClient(logger *zap.Logger, baseURL string, timeout time.Duration, cache feeds.Cache) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = feeds.NoopCache{}
	}
	if baseURL == "" {
		baseURL = constants.DefaultMarketFeedURL
	}
	if timeout <= 0 {
		timeout = constants.DefaultFeedTimeoutSeconds * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		cache:      cache,
		logger:     logger,
	}
}

// Snapshot returns the latest prices and history for the given segment and
// period. It never fails: transport, status, and parse problems all degrade
// to the static fallback snapshot.
func (c *Client) Snapshot(ctx context.Context, propertyType PropertyType, period Period) Snapshot {
	cacheKey := fmt.Sprintf("market:%s:%s", propertyType, period)
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		var snapshot Snapshot
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			return snapshot
		}
		c.logger.Warn("discarding unparseable cached market snapshot",
			zap.String("op", "market.Snapshot"),
			zap.String("key", cacheKey),
		)
	}

	body, err := c.fetch(ctx, propertyType, period)
	if err != nil {
		c.logger.Warn("market feed unavailable, using fallback prices",
			zap.String("op", "market.Snapshot"),
			zap.Error(err),
		)
		return FallbackSnapshot()
	}

	snapshot, err := parseSnapshot(body)
	if err != nil {
		c.logger.Warn("market feed response unparseable, using fallback prices",
			zap.String("op", "market.Snapshot"),
			zap.Error(err),
		)
		return FallbackSnapshot()
	}

	if encoded, err := json.Marshal(snapshot); err == nil {
		c.cache.Set(ctx, cacheKey, string(encoded))
	}
	return snapshot
}

func (c *Client) fetch(ctx context.Context, propertyType PropertyType, period Period) (string, error) {
	requestURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid market feed URL %q: %w", c.baseURL, err)
	}
	query := requestURL.Query()
	query.Set("type", string(propertyType))
	query.Set("period", string(period))
	requestURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build market feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("market feed request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("market feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read market feed response: %w", err)
	}
	return string(body), nil
}

// FallbackSnapshot returns the static figures used when the feed cannot be
// reached or parsed. The history collapses to a single point labeled with
// the current month.
func FallbackSnapshot() Snapshot {
	return Snapshot{
		NewBuilding: constants.FallbackPricePerSqmNew,
		Resale:      constants.FallbackPricePerSqmResale,
		History: []HistoryPoint{
			{
				Date:        datetime.MonthLabel(time.Now(), 0),
				NewBuilding: constants.FallbackPricePerSqmNew,
				Resale:      constants.FallbackPricePerSqmResale,
			},
		},
		Fallback: true,
	}
}
