package tradier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// LiveBaseURL is the production Tradier API endpoint.
	LiveBaseURL = "https://api.tradier.com/v1"

	// SandboxBaseURL is the paper-trading Tradier API endpoint.
	SandboxBaseURL = "https://sandbox.tradier.com/v1"
)

// Client handles HTTP requests to the Tradier brokerage API.
type Client struct {
	BaseURL    string
	Token      string
	AccountID  string
	HTTPClient *http.Client
}

// NewClient creates a new API client with the given bearer token.
// When sandbox is true, requests go to the paper-trading endpoint.
func NewClient(token string, sandbox bool) *Client {
	baseURL := LiveBaseURL
	if sandbox {
		baseURL = SandboxBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithAccount sets the account ID used by account-scoped endpoints.
func (c *Client) WithAccount(accountID string) *Client {
	c.AccountID = accountID
	return c
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.BaseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// requireAccount returns the configured account ID or an error when unset.
func (c *Client) requireAccount() (string, error) {
	if c.AccountID == "" {
		return "", fmt.Errorf("tradier: account ID is required (run 'optcal configure' or set TRADIER_ACCOUNT_ID)")
	}
	return c.AccountID, nil
}

// get performs a GET request and decodes the JSON response into target.
func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, target)
}

// submit performs a form-encoded request (POST or PUT) and decodes the
// JSON response into target. Tradier's order endpoints take form params,
// not JSON bodies.
func (c *Client) submit(ctx context.Context, method, path string, params url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, target)
}

func (c *Client) do(req *http.Request, target any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := CheckResponse(resp); err != nil {
		return err
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
