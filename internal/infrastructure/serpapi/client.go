package serpapi

import (
	"context"
	"fmt"
	"log"

	g "github.com/serpapi/google-search-results-golang"

	"github.com/pricescout/backend/internal/domain"
)

// Client wraps the SerpApi Google engine. It is the pipeline's structured
// data source: organic results with rich-snippet price extensions are
// mapped into StructuredData for the extractor's structured path.
type Client struct {
	apiKey string
	domain string
	debug  bool
}

// NewClient creates a new SerpApi-backed Google provider
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		domain: "google.com",
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return domain.SourceGoogle
}

// Search performs a Google search via SerpApi and maps the organic results.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: serpapi api key is not set", domain.ErrProviderFailure)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parameter := map[string]string{
		"engine":        "google",
		"q":             query,
		"google_domain": c.domain,
		"gl":            "us",
		"hl":            "en",
		"num":           fmt.Sprintf("%d", maxResults),
	}

	if c.debug {
		log.Printf("[SerpApi] Searching for: %q (max %d results)", query, maxResults)
	}

	search := g.NewGoogleSearch(parameter, c.apiKey)
	raw, err := search.GetJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	organic, ok := raw["organic_results"].([]interface{})
	if !ok {
		log.Printf("[SerpApi] No organic_results in response for %q", query)
		return []domain.SearchResult{}, nil
	}

	var results []domain.SearchResult
	for _, item := range organic {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		title, _ := entry["title"].(string)
		link, _ := entry["link"].(string)
		snippet, _ := entry["snippet"].(string)

		if title == "" || link == "" {
			continue
		}

		results = append(results, domain.SearchResult{
			Title:          title,
			URL:            link,
			Snippet:        snippet,
			Source:         domain.SourceGoogle,
			StructuredData: extractStructuredData(entry),
		})

		if len(results) >= maxResults {
			break
		}
	}

	log.Printf("[SerpApi] Found %d organic results for %q", len(results), query)
	return results, nil
}

// extractStructuredData pulls rich-snippet price extensions off an organic
// result. The top block feeds the metatag-style slot, the bottom block the
// offer-style slot; either may be absent.
func extractStructuredData(entry map[string]interface{}) *domain.StructuredData {
	snippet, ok := entry["rich_snippet"].(map[string]interface{})
	if !ok {
		return nil
	}

	sd := &domain.StructuredData{}
	populated := false

	if price, currency, ok := detectedPrice(snippet, "top"); ok {
		sd.MetatagPrice = price
		sd.MetatagCurrency = currency
		populated = true
	}
	if price, currency, ok := detectedPrice(snippet, "bottom"); ok {
		sd.OfferPrice = price
		sd.OfferCurrency = currency
		populated = true
	}

	if !populated {
		return nil
	}
	return sd
}

// detectedPrice reads rich_snippet.<block>.detected_extensions.{price,currency}.
func detectedPrice(snippet map[string]interface{}, block string) (string, string, bool) {
	b, ok := snippet[block].(map[string]interface{})
	if !ok {
		return "", "", false
	}
	ext, ok := b["detected_extensions"].(map[string]interface{})
	if !ok {
		return "", "", false
	}

	rawPrice, ok := ext["price"]
	if !ok {
		return "", "", false
	}

	price := fmt.Sprintf("%v", rawPrice)
	currency, _ := ext["currency"].(string)

	return price, currency, true
}
