package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// APIError is an error body reported by the Sheets values API. The code
// is an HTTP status and is propagated as the service's response status.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sheets API error %d (%s): %s", e.Code, e.Status, e.Message)
}

// Client fetches value ranges from the Google Sheets values API. The
// caller's OAuth access token is passed through opaquely; the client
// never inspects it.
type Client struct {
	Client  *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// valueRange matches the values API response schema. Cells arrive as
// formatted strings; an error body replaces values entirely.
type valueRange struct {
	Range          string     `json:"range"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
	Error          *APIError  `json:"error"`
}

// Values fetches one range of the spreadsheet and returns its rows
// (header row first). An upstream-reported error is returned as
// *APIError; transport and decode failures are wrapped normally.
func (c *Client) Values(ctx context.Context, spreadsheetID, rng, token string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.BaseURL, url.PathEscape(spreadsheetID), url.PathEscape(rng))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching range %q: %w", rng, err)
	}
	defer resp.Body.Close()

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decoding range %q (status %d): %w", rng, resp.StatusCode, err)
	}

	if vr.Error != nil {
		return nil, vr.Error
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for range %q", resp.StatusCode, rng)
	}

	return vr.Values, nil
}
