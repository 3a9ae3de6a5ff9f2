package usecase

import (
	"net/url"
	"strings"
)

// retailerKey derives the normalized retailer identity from a URL: host
// minus the www. prefix, first domain label, lowercased. amazon.com and
// amazon.co.uk both collapse to "amazon". This is retailer identity only,
// not product-level matching.
func retailerKey(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}

	return strings.SplitN(host, ".", 2)[0]
}

// RetailerFromURL returns the display name for a URL's retailer: the
// normalized identity with its first letter capitalized. Malformed URLs
// yield "Unknown".
func RetailerFromURL(rawURL string) string {
	key := retailerKey(rawURL)
	if key == "" {
		return "Unknown"
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
