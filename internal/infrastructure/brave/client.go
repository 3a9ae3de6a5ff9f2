package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pricescout/backend/internal/domain"
)

const defaultBaseURL = "https://api.search.brave.com/res/v1"

// Client handles communication with the Brave Search API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// webSearchResponse models the slice of the Brave response we consume
type webSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// NewClient creates a new Brave Search client. An empty baseURL uses the
// public endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Brave's free tier allows 1 request per second
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return domain.SourceBrave
}

// Search queries the Brave web search endpoint. Transient failures are
// retried up to 3 times with a linear backoff.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: brave api key is not set", domain.ErrProviderFailure)
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("count", fmt.Sprintf("%d", maxResults))

	reqURL := fmt.Sprintf("%s/web/search?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[Brave] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var searchResp webSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrProviderFailure, err)
		}

		results := make([]domain.SearchResult, 0, len(searchResp.Web.Results))
		for _, r := range searchResp.Web.Results {
			if r.Title == "" || r.URL == "" {
				continue
			}
			results = append(results, domain.SearchResult{
				Title:       r.Title,
				URL:         r.URL,
				Description: r.Description,
				Source:      domain.SourceBrave,
			})
		}

		log.Printf("[Brave] Found %d results for %q", len(results), query)
		return results, nil
	}

	return nil, lastErr
}

// doRequest executes a single GET with auth headers and returns the body.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	if c.debug {
		log.Printf("[Brave] GET %s", reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrProviderFailure, resp.StatusCode, string(body))
	}

	return body, nil
}
