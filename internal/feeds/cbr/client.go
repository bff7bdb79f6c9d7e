// Package cbr fetches the central-bank key rate and inflation rate. The
// figures only suggest calculator defaults, so every failure degrades to
// static fallbacks and no error ever escapes the client.
package cbr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avdeyev/mortgage-planner/internal/feeds"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"go.uber.org/zap"
)

// Rates holds the central-bank indicators, both annual percentages.
type Rates struct {
	KeyRate       float64 `json:"keyRate"`
	InflationRate float64 `json:"inflationRate"`
	Fallback      bool    `json:"fallback,omitempty"`
}

// The indicators page renders each figure as a label followed by a percent
// value, with a decimal comma (e.g. "Ключевая ставка ... 16,00%").
var (
	keyRatePattern   = regexp.MustCompile(`(?is)(?:Ключевая ставка|Key rate)\D{0,100}?(\d+(?:[.,]\d+)?)\s*%`)
	inflationPattern = regexp.MustCompile(`(?is)(?:Инфляция|Inflation)\D{0,100}?(\d+(?:[.,]\d+)?)\s*%`)
)

const cacheKey = "cbr:rates"

// Client fetches central-bank indicators over HTTP with an optional cache in
// front.
type Client struct {
	httpClient *http.Client
	pageURL    string
	cache      feeds.Cache
	logger     *zap.Logger
}

// NewClient constructs a rate feed client. A nil cache disables caching.
func NewClient(logger *zap.Logger, pageURL string, timeout time.Duration, cache feeds.Cache) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = feeds.NoopCache{}
	}
	if pageURL == "" {
		pageURL = constants.DefaultRateFeedURL
	}
	if timeout <= 0 {
		timeout = constants.DefaultFeedTimeoutSeconds * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		pageURL:    pageURL,
		cache:      cache,
		logger:     logger,
	}
}

// Rates returns the current key rate and inflation rate, or the static
// fallbacks when the page cannot be fetched or parsed.
func (c *Client) Rates(ctx context.Context) Rates {
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		var rates Rates
		if err := json.Unmarshal([]byte(cached), &rates); err == nil {
			return rates
		}
		c.logger.Warn("discarding unparseable cached rates",
			zap.String("op", "cbr.Rates"),
		)
	}

	body, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("rate feed unavailable, using fallback rates",
			zap.String("op", "cbr.Rates"),
			zap.Error(err),
		)
		return FallbackRates()
	}

	rates, err := parseRates(body)
	if err != nil {
		c.logger.Warn("rate feed response unparseable, using fallback rates",
			zap.String("op", "cbr.Rates"),
			zap.Error(err),
		)
		return FallbackRates()
	}

	if encoded, err := json.Marshal(rates); err == nil {
		c.cache.Set(ctx, cacheKey, string(encoded))
	}
	return rates
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build rate feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rate feed request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read rate feed response: %w", err)
	}
	return string(body), nil
}

func parseRates(body string) (Rates, error) {
	keyRate, err := extractPercent(keyRatePattern, body)
	if err != nil {
		return Rates{}, fmt.Errorf("key rate: %w", err)
	}
	inflation, err := extractPercent(inflationPattern, body)
	if err != nil {
		return Rates{}, fmt.Errorf("inflation: %w", err)
	}
	return Rates{KeyRate: keyRate, InflationRate: inflation}, nil
}

func extractPercent(pattern *regexp.Regexp, body string) (float64, error) {
	match := pattern.FindStringSubmatch(body)
	if match == nil {
		return 0, fmt.Errorf("indicator not found in page")
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable indicator %q: %w", match[1], err)
	}
	return value, nil
}

// FallbackRates returns the static indicator figures.
func FallbackRates() Rates {
	return Rates{
		KeyRate:       constants.FallbackKeyRate,
		InflationRate: constants.FallbackInflationRate,
		Fallback:      true,
	}
}
