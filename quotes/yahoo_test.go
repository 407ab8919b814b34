package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPayload = `{
	"chart": {
		"result": [{
			"meta": {"regularMarketPrice": 38.42},
			"timestamp": [1754006400, 1754092800, 1754179200, 1754265600],
			"indicators": {
				"quote": [{
					"open":   [37.0, 37.5, null, 38.1],
					"high":   [37.8, 38.0, null, 38.6],
					"low":    [36.9, 37.2, null, 37.9],
					"close":  [37.5, 37.9, null, 38.42],
					"volume": [1000, 1200, null, 900]
				}]
			}
		}],
		"error": null
	}
}`

func newChartServer(t *testing.T, handler http.HandlerFunc) *Yahoo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYahoo(srv.URL, "3mo")
}

func TestYahooCurrentPrice(t *testing.T) {
	y := newChartServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/PETR4.SA", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartPayload)
	})

	p, err := y.CurrentPrice(context.Background(), "PETR4.SA")
	require.NoError(t, err)
	assert.Equal(t, 38.42, p)
}

func TestYahooHistorySkipsNullBars(t *testing.T) {
	y := newChartServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3mo", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartPayload)
	})

	series, err := y.History(context.Background(), "PETR4.SA", 0)
	require.NoError(t, err)

	// The halted third bar is dropped.
	require.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{37.5, 37.9, 38.42}, series.Closes())
	assert.Equal(t, "PETR4.SA", series.Ticker)
	assert.Equal(t, 37.0, series.Bars[0].Open)
	assert.Equal(t, 1000.0, series.Bars[0].Volume)
}

func TestYahooHistoryTrimsToRequestedBars(t *testing.T) {
	y := newChartServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload)
	})

	series, err := y.History(context.Background(), "PETR4.SA", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{37.9, 38.42}, series.Closes())
}

func TestYahooServerErrorsWrapUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"chart error", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
		}},
		{"empty result", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			y := newChartServer(t, tc.handler)
			_, err := y.CurrentPrice(context.Background(), "PETR4.SA")
			assert.ErrorIs(t, err, ErrUnavailable)
			_, err = y.History(context.Background(), "PETR4.SA", 0)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestYahooConnectionRefusedWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	y := NewYahoo(srv.URL, "")

	_, err := y.CurrentPrice(context.Background(), "PETR4.SA")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewYahooDefaults(t *testing.T) {
	y := NewYahoo("", "")
	assert.Equal(t, DefaultBaseURL, y.baseURL)
	assert.Equal(t, "3mo", y.rangeParam)
}
