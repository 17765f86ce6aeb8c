package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/chatlens/bot/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Serper shopping search API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	region      string
	locale      string
	rateLimiter *rate.Limiter
	debug       bool
}

// searchRequest is the JSON body Serper expects for a shopping query.
type searchRequest struct {
	Query       string `json:"q"`
	Region      string `json:"gl"`
	Locale      string `json:"hl"`
	Autocorrect bool   `json:"autocorrect"`
	Type        string `json:"type"`
}

// searchResponse carries the shopping section of Serper's response. A response
// without the section decodes to an empty slice.
type searchResponse struct {
	Shopping []domain.ShoppingItem `json:"shopping"`
}

// NewClient creates a new Serper API client.
func NewClient(apiKey, baseURL, region, locale string) *Client {
	// Free-tier Serper plans allow roughly 50 queries per minute.
	limiter := rate.NewLimiter(rate.Limit(0.8), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		region:      region,
		locale:      locale,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the delay before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// doRequest executes a POST with the API key header set.
func (c *Client) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	return resp, nil
}

// ShoppingSearch issues a shopping-type query and returns the raw result items.
// Zero items is a legitimate outcome; transport and decode failures are errors
// so callers can tell "found nothing" from "search failed".
func (c *Client) ShoppingSearch(ctx context.Context, query string) ([]domain.ShoppingItem, error) {
	if c.debug {
		log.Printf("[serper] ShoppingSearch called with query: %q", query)
	}

	body, err := json.Marshal(searchRequest{
		Query:       query,
		Region:      c.region,
		Locale:      c.locale,
		Autocorrect: true,
		Type:        "shopping",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, body)
		if err != nil {
			log.Printf("[serper] request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[serper] API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(respBody))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSearchUnavailable, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp searchResponse
		if err := json.Unmarshal(respBody, &searchResp); err != nil {
			log.Printf("[serper] JSON decode error: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
		}

		if c.debug {
			log.Printf("[serper] %d shopping items for query: %q", len(searchResp.Shopping), query)
		}
		return searchResp.Shopping, nil
	}

	log.Printf("[serper] all retries failed for query: %q", query)
	return nil, lastErr
}
