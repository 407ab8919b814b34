package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MaiconJonatha/trading-bot/market"
)

// DefaultBaseURL is Yahoo Finance's public chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Yahoo fetches quotes and daily bar history from the Yahoo Finance
// chart API.
type Yahoo struct {
	baseURL    string
	httpClient *http.Client
	rangeParam string
}

// NewYahoo creates a client. Empty baseURL and historyRange fall back
// to the public endpoint and a 3 month daily range.
func NewYahoo(baseURL, historyRange string) *Yahoo {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if historyRange == "" {
		historyRange = "3mo"
	}
	return &Yahoo{
		baseURL:    baseURL,
		rangeParam: historyRange,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// chartResponse mirrors the subset of the chart payload we consume.
// Price arrays use pointers because Yahoo emits null for halted bars.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *Yahoo) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	resp, err := y.fetchChart(ctx, ticker, "1d")
	if err != nil {
		return 0, err
	}

	price := resp.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("%w: no market price for %s", ErrUnavailable, ticker)
	}
	return price, nil
}

func (y *Yahoo) History(ctx context.Context, ticker string, bars int) (*market.Series, error) {
	resp, err := y.fetchChart(ctx, ticker, y.rangeParam)
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: empty history for %s", ErrUnavailable, ticker)
	}
	quote := result.Indicators.Quote[0]

	series := &market.Series{Ticker: ticker}
	for i, ts := range result.Timestamp {
		// Halted or not-yet-closed bars come through as nulls; skip them.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := market.Bar{
			Time:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		if err := series.Append(bar); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty history for %s", ErrUnavailable, ticker)
	}
	if bars > 0 && series.Len() > bars {
		series.Bars = series.Bars[series.Len()-bars:]
	}
	return series, nil
}

func (y *Yahoo) fetchChart(ctx context.Context, ticker, dataRange string) (*chartResponse, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", dataRange)

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "trading-bot/1.0")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, ticker, resp.StatusCode)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: decode chart: %v", ErrUnavailable, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no result for %s", ErrUnavailable, ticker)
	}
	return &chart, nil
}
