package domain

// Provider source identifiers. The order of SourcePriority is significant:
// results are merged in this order and "google" is the default priority
// source for retailer deduplication since it is the only provider that
// attaches structured offer data.
const (
	SourceGoogle = "google"
	SourceBrave  = "brave"
	SourceTavily = "tavily"
)

// SourcePriority lists provider identifiers in merge-priority order.
var SourcePriority = []string{SourceGoogle, SourceBrave, SourceTavily}

// StructuredData holds machine-readable price fields attached to a result
// by a provider. Values are kept as raw strings ("$1,299.99", "1299.99")
// and parsed by the extractor. Metatag fields are checked before offer fields.
type StructuredData struct {
	MetatagPrice    string `json:"metatagPrice,omitempty"`
	MetatagCurrency string `json:"metatagCurrency,omitempty"`
	OfferPrice      string `json:"offerPrice,omitempty"`
	OfferCurrency   string `json:"offerCurrency,omitempty"`
}

// SearchResult is a single raw listing returned by a search provider.
// Immutable once produced by the aggregator.
type SearchResult struct {
	Title          string          `json:"title"`
	URL            string          `json:"url"`
	Snippet        string          `json:"snippet,omitempty"`
	Description    string          `json:"description,omitempty"`
	Source         string          `json:"source"`
	StructuredData *StructuredData `json:"structuredData,omitempty"`
}
