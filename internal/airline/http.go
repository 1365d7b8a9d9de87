package airline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPDirectory looks carriers up against an adsbdb-compatible REST
// API. Lookups are a single attempt with a short timeout; the caller
// treats any failure as "no answer".
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDirectory creates a new HTTPDirectory instance
func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	if baseURL == "" {
		baseURL = "https://api.adsbdb.com"
	}
	return &HTTPDirectory{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// airlineResponse matches the adsbdb airline endpoint payload.
type airlineResponse struct {
	Response []struct {
		Name string `json:"name"`
	} `json:"response"`
}

// Lookup queries the API with the flight number's designator and
// returns the first carrier name in the answer, or "" when the
// designator is unknown to the API.
func (d *HTTPDirectory) Lookup(ctx context.Context, flightNumber string) (string, error) {
	designator := Designator(flightNumber)
	if designator == "" {
		return "", nil
	}

	url := fmt.Sprintf("%s/v0/airline/%s", d.baseURL, designator)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling airline API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("airline API error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload airlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(payload.Response) == 0 {
		return "", nil
	}
	return payload.Response[0].Name, nil
}
