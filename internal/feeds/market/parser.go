package market

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The upstream page carries the price table as plain HTML rows: a YYYY-MM
// label followed by the new-construction and resale per-square-meter prices,
// formatted with space (or nbsp) thousands separators and an optional
// decimal comma.
var rowPattern = regexp.MustCompile(
	`(?s)<tr[^>]*>\s*<td[^>]*>\s*(\d{4}-\d{2})\s*</td>\s*<td[^>]*>([^<]+)</td>\s*<td[^>]*>([^<]+)</td>`)

func parseSnapshot(body string) (Snapshot, error) {
	rows := rowPattern.FindAllStringSubmatch(body, -1)
	if len(rows) == 0 {
		return Snapshot{}, fmt.Errorf("no price rows found in market feed response")
	}

	history := make([]HistoryPoint, 0, len(rows))
	for _, row := range rows {
		newPrice, err := parsePrice(row[2])
		if err != nil {
			return Snapshot{}, fmt.Errorf("bad new-building price for %s: %w", row[1], err)
		}
		resalePrice, err := parsePrice(row[3])
		if err != nil {
			return Snapshot{}, fmt.Errorf("bad resale price for %s: %w", row[1], err)
		}
		history = append(history, HistoryPoint{
			Date:        row[1],
			NewBuilding: newPrice,
			Resale:      resalePrice,
		})
	}

	latest := history[len(history)-1]
	return Snapshot{
		NewBuilding: latest.NewBuilding,
		Resale:      latest.Resale,
		History:     history,
	}, nil
}

func parsePrice(raw string) (float64, error) {
	cleaned := strings.NewReplacer(
		" ", "",
		" ", "",
		"&nbsp;", "",
		",", ".",
	).Replace(strings.TrimSpace(raw))

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q: %w", raw, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("non-positive price %q", raw)
	}
	return value, nil
}
