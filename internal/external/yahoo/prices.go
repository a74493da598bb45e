package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wonny/helios/internal/contracts"
)

// chartResponse mirrors the Yahoo Finance v8 chart API payload. Close
// values are pointers because the API reports non-trading gaps as null.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses fetches daily closing prices for a symbol over a date
// range. Only the close field is consumed; gaps come back as undefined
// points, not errors.
// ⭐ SSOT: Yahoo 가격 API 호출은 이 함수에서만
func (c *Client) FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) (contracts.Series, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%2Csplits",
		c.baseURL, strings.ToUpper(symbol), from.Unix(), to.Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return contracts.Series{}, fmt.Errorf("create request failed: %w", err)
	}

	// Yahoo rejects requests without a browser-ish user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return contracts.Series{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contracts.Series{}, fmt.Errorf("read response body failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 120 {
			preview = preview[:120]
		}
		return contracts.Series{}, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, preview)
	}

	series, err := parseChartResponse(symbol, body)
	if err != nil {
		return contracts.Series{}, fmt.Errorf("parse response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  series.Len(),
		"valid":  series.ValidCount(),
	}).Debug("Fetched daily closes")

	return series, nil
}

// parseChartResponse converts the raw chart payload into a price series.
// A null or non-positive close becomes an undefined point.
func parseChartResponse(symbol string, body []byte) (contracts.Series, error) {
	var yc chartResponse
	if err := json.Unmarshal(body, &yc); err != nil {
		return contracts.Series{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if yc.Chart.Error != nil {
		return contracts.Series{}, fmt.Errorf("yahoo error %s: %s", yc.Chart.Error.Code, yc.Chart.Error.Description)
	}

	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return contracts.Series{}, fmt.Errorf("no data for symbol %s", symbol)
	}

	result := yc.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	series := contracts.Series{Symbol: strings.ToUpper(symbol)}
	for i, ts := range result.Timestamp {
		date := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)

		point := contracts.Point{Date: date, Valid: false}
		if i < len(closes) && closes[i] != nil && *closes[i] > 0 {
			point.Value = *closes[i]
			point.Valid = true
		}
		series.Points = append(series.Points, point)
	}

	return series, nil
}
