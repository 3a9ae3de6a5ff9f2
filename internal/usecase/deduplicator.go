package usecase

import (
	"log"

	"github.com/pricescout/backend/internal/domain"
)

// RetailerDeduplicator keeps one listing per retailer identity, preferring
// the entry from the priority source (the structured-data provider).
type RetailerDeduplicator struct {
	prioritySource     string
	enableDebugLogging bool
}

// NewRetailerDeduplicator creates a deduplicator. An empty prioritySource
// defaults to the structured-data provider.
func NewRetailerDeduplicator(prioritySource string, enableDebugLogging bool) *RetailerDeduplicator {
	if prioritySource == "" {
		prioritySource = domain.SourceGoogle
	}
	return &RetailerDeduplicator{
		prioritySource:     prioritySource,
		enableDebugLogging: enableDebugLogging,
	}
}

// Dedupe groups listings by retailer identity and keeps one per group. For
// duplicate retailers the priority-source entry wins; with no priority
// entry the first-seen duplicate is kept even when a later one is cheaper.
// That tie-break is intentional and covered by tests.
func (d *RetailerDeduplicator) Dedupe(prices []domain.PriceInfo) []domain.PriceInfo {
	type group struct {
		pick        domain.PriceInfo
		hasPriority bool
	}

	groups := make(map[string]*group)
	var order []string

	for _, price := range prices {
		key := retailerKey(price.URL)

		g, seen := groups[key]
		if !seen {
			groups[key] = &group{pick: price, hasPriority: price.Source == d.prioritySource}
			order = append(order, key)
			continue
		}

		if !g.hasPriority && price.Source == d.prioritySource {
			if d.enableDebugLogging {
				log.Printf("[DEDUP] Replacing %s entry for %q with priority source %s", g.pick.Source, key, price.Source)
			}
			g.pick = price
			g.hasPriority = true
		}
	}

	deduped := make([]domain.PriceInfo, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, groups[key].pick)
	}

	return deduped
}
