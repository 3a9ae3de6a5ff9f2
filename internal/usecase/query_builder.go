package usecase

import (
	"strings"

	"github.com/pricescout/backend/internal/domain"
)

// pricingIntentKeywords are terms that already signal shopping intent in a
// query. If none are present, " price" is appended so the search engines
// surface commerce listings rather than reviews.
var pricingIntentKeywords = []string{"price", "buy", "shop", "purchase"}

// BuildQuery turns a raw product name into a search query with pricing
// intent. Returns ErrEmptyQuery if the name is empty after trimming.
func BuildQuery(productName string) (string, error) {
	trimmed := strings.TrimSpace(productName)
	if trimmed == "" {
		return "", domain.ErrEmptyQuery
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range pricingIntentKeywords {
		if strings.Contains(lower, kw) {
			return trimmed, nil
		}
	}

	return trimmed + " price", nil
}
