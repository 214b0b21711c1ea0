package tradier

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuoteSingleObject(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"quotes":{"quote":{
			"symbol":"AAPL","description":"Apple Inc","type":"stock",
			"last":189.5,"change":1.25,"change_percentage":0.66,
			"bid":189.45,"ask":189.55,"volume":1000000
		}}}`))
	})

	quote, err := client.GetQuote(t.Context(), "aapl", false)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "symbols=AAPL")
	assert.NotContains(t, gotQuery, "greeks")
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 189.5, quote.Last)
	assert.False(t, quote.IsOption())
}

func TestGetQuoteArrayTakesFirst(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"quotes":{"quote":[
			{"symbol":"AAPL","type":"stock","last":189.5},
			{"symbol":"MSFT","type":"stock","last":420.0}
		]}}`))
	})

	quote, err := client.GetQuote(t.Context(), "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
}

func TestGetQuoteWithGreeks(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"quotes":{"quote":{
			"symbol":"AAPL260918C00190000","type":"option","last":5.10,
			"underlying":"AAPL","strike":190,"option_type":"call",
			"greeks":{"delta":0.52,"gamma":0.03,"theta":-0.08,"vega":0.25,"smv_vol":0.2871}
		}}}`))
	})

	quote, err := client.GetQuote(t.Context(), "AAPL260918C00190000", true)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "greeks=true")
	assert.True(t, quote.IsOption())
	require.NotNil(t, quote.Greeks)
	assert.Equal(t, 0.52, quote.Greeks.Delta)
	assert.Equal(t, 0.2871, quote.Greeks.SmvVol)
}

func TestGetQuoteUnknownSymbol(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Unknown symbols come back with the literal string "null".
		_, _ = w.Write([]byte(`{"quotes":{"quote":"null"}}`))
	})

	_, err := client.GetQuote(t.Context(), "NOPE", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"securities":{"security":[
			{"symbol":"AAPL","exchange":"Q","type":"stock","description":"Apple Inc"},
			{"symbol":"AAPU","exchange":"P","type":"etf","description":"Leveraged Apple"}
		]}}`))
	})

	securities, err := client.Lookup(t.Context(), "aap")
	require.NoError(t, err)
	require.Len(t, securities, 2)
	assert.Equal(t, "AAPL", securities[0].Symbol)
}
