package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pricescout/backend/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// titleSeparators split a page title into "product name | store name"
// style segments. Only the first segment is kept.
var titleSeparators = []string{" | ", " - ", " – ", " — ", " :: "}

// storeSuffixRe drops trailing store boilerplate like "Buy online at ...".
var storeSuffixRe = regexp.MustCompile(`(?i)\s*(?:buy online.*|free delivery.*|official site.*)$`)

var multiSpaceRe = regexp.MustCompile(`\s+`)

// Scraper extracts a best-guess product name from a product-page URL.
// It is heuristic text scraping only: og:title, then <title>, then the
// first <h1>.
type Scraper struct {
	client *http.Client
	debug  bool
}

// NewScraper creates a product-name scraper
func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetDebug toggles verbose request logging
func (s *Scraper) SetDebug(debug bool) {
	s.debug = debug
}

// ExtractName fetches the page and returns the product name heuristically.
func (s *Scraper) ExtractName(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if s.debug {
		log.Printf("[Scraper] %s -> %d", pageURL, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrProductNameNotFound, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	for _, candidate := range []string{
		doc.Find(`meta[property="og:title"]`).AttrOr("content", ""),
		doc.Find("title").First().Text(),
		doc.Find("h1").First().Text(),
	} {
		if name := cleanTitle(candidate); name != "" {
			if s.debug {
				log.Printf("[Scraper] Extracted product name: %q", name)
			}
			return name, nil
		}
	}

	return "", domain.ErrProductNameNotFound
}

// cleanTitle reduces a raw page title to the product name segment.
func cleanTitle(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	for _, sep := range titleSeparators {
		if idx := strings.Index(name, sep); idx > 0 {
			name = name[:idx]
		}
	}

	name = storeSuffixRe.ReplaceAllString(name, "")
	name = multiSpaceRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	// A one-word "title" is almost always a store name, not a product.
	if len(name) < 3 {
		return ""
	}

	return name
}
