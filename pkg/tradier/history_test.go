package tradier

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHistoricalQuotes(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"history":{"day":[
			{"date":"2026-08-17","open":100,"high":102,"low":99,"close":101,"volume":500000},
			{"date":"2026-08-18","open":101,"high":103,"low":100,"close":102,"volume":600000}
		]}}`))
	})

	start, _ := time.Parse(DateFormat, "2026-08-01")
	days, err := client.GetHistoricalQuotes(t.Context(), "aapl", "daily", start)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "symbol=AAPL")
	assert.Contains(t, gotQuery, "interval=daily")
	assert.Contains(t, gotQuery, "start=2026-08-01")
	require.Len(t, days, 2)
	assert.Equal(t, 101.0, days[0].Close)
}

func TestGetHistoricalQuotesNone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"history":null}`))
	})

	start, _ := time.Parse(DateFormat, "2026-08-01")
	_, err := client.GetHistoricalQuotes(t.Context(), "NOPE", "daily", start)
	assert.ErrorIs(t, err, ErrNotFound)
}
