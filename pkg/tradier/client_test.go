package tradier

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a test server backed by handler and returns a
// client pointed at it. The server is torn down with the test.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", false).WithBaseURL(srv.URL)
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"quotes":{"quote":{"symbol":"SPY","type":"etf"}}}`))
	})

	_, err := client.GetQuote(t.Context(), "SPY", false)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestNewClientEndpoints(t *testing.T) {
	assert.Equal(t, LiveBaseURL, NewClient("t", false).BaseURL)
	assert.Equal(t, SandboxBaseURL, NewClient("t", true).BaseURL)
}

func TestAccountRequiredBeforeAccountCalls(t *testing.T) {
	client := NewClient("t", true)

	_, err := client.GetBalances(t.Context())
	assert.Error(t, err)

	_, err = client.PreviewOrder(t.Context(), OrderRequest{})
	assert.Error(t, err)
}
