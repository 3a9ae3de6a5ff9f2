package usecase

import (
	"log"
	"net/url"
	"strings"

	"github.com/pricescout/backend/internal/domain"
)

// blockedDomains are video/social/reference platforms that never carry a
// purchasable listing. Checked first; a match is a hard reject.
var blockedDomains = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"tiktok.com",
	"reddit.com",
	"pinterest.com",
	"wikipedia.org",
	"quora.com",
}

// knownRetailerDomains is an allow-list of retailers whose results are
// always kept, regardless of URL path or title.
var knownRetailerDomains = []string{
	"amazon.", "ebay.", "walmart.", "target.", "bestbuy.", "costco.",
	"newegg.", "homedepot.", "lowes.", "wayfair.", "etsy.", "aliexpress.",
	"argos.", "currys.", "johnlewis.", "tesco.", "asda.", "very.",
	"overstock.", "macys.", "kohls.", "samsclub.", "bhphotovideo.",
}

// commercePathKeywords mark a URL path as a store/product page.
var commercePathKeywords = []string{"/shop/", "/store/", "/product", "/item"}

// buyIntentTitleKeywords mark a result title as a shopping page.
var buyIntentTitleKeywords = []string{"buy", "shop"}

// Aggregator merges per-provider result lists, drops URL-level duplicates
// and filters out non-commerce results.
type Aggregator struct {
	enableDebugLogging bool
}

// NewAggregator creates a new result aggregator
func NewAggregator(enableDebugLogging bool) *Aggregator {
	return &Aggregator{enableDebugLogging: enableDebugLogging}
}

// Aggregate merges provider result lists (already ordered by provider
// priority), deduplicates by normalized URL and keeps only commerce-looking
// results. Returns ErrNoResults when nothing survives.
func (a *Aggregator) Aggregate(resultSets [][]domain.SearchResult) ([]domain.SearchResult, error) {
	var merged []domain.SearchResult
	seen := make(map[string]bool)

	for _, set := range resultSets {
		for _, result := range set {
			if result.URL == "" {
				continue
			}

			key := normalizeURL(result.URL)
			if seen[key] {
				if a.enableDebugLogging {
					log.Printf("[AGGREGATE] Duplicate URL dropped: %s", result.URL)
				}
				continue
			}
			seen[key] = true

			if !isCommerceResult(result) {
				if a.enableDebugLogging {
					log.Printf("[AGGREGATE] Non-commerce result dropped: %s", result.URL)
				}
				continue
			}

			merged = append(merged, result)
		}
	}

	if len(merged) == 0 {
		return nil, domain.ErrNoResults
	}

	return merged, nil
}

// normalizeURL reduces a URL to a comparison key: scheme, www. prefix,
// query string and trailing slash are ignored, and the rest is lowercased.
// Guards against the same listing surfacing from two providers under
// cosmetically different URLs.
func normalizeURL(rawURL string) string {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	if idx := strings.Index(u, "?"); idx >= 0 {
		u = u[:idx]
	}
	u = strings.TrimSuffix(u, "/")
	return u
}

// isCommerceResult decides whether a result plausibly points at a
// purchasable listing. Block-list first, then any one allow condition.
// Domain lists are matched against the URL host, never the full URL, so
// "x.com" blocks x.com and m.x.com but not xbox.com, and "very." allows
// very.co.uk but not delivery.com.
func isCommerceResult(result domain.SearchResult) bool {
	u, err := url.Parse(strings.TrimSpace(result.URL))
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	for _, blocked := range blockedDomains {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return false
		}
	}

	for _, retailer := range knownRetailerDomains {
		if strings.HasPrefix(host, retailer) || strings.Contains(host, "."+retailer) {
			return true
		}
	}

	pathLower := strings.ToLower(u.Path)
	for _, keyword := range commercePathKeywords {
		if strings.Contains(pathLower, keyword) {
			return true
		}
	}

	titleLower := strings.ToLower(result.Title)
	for _, keyword := range buyIntentTitleKeywords {
		if strings.Contains(titleLower, keyword) {
			return true
		}
	}

	return false
}
