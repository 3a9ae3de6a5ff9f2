package domain

// Supported currency codes. Prices in any other currency are never produced
// by the extractor; unknown codes normalize at rate 1.0 as a safety net.
const (
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
	CurrencyCAD = "CAD"
	CurrencyAUD = "AUD"
)

// Price sanity bounds. Amounts outside (0, 1000000) are treated as
// extraction noise and rejected.
const (
	MinPrice = 0.0
	MaxPrice = 1_000_000.0
)

// PriceInfo is one extracted, comparable listing.
type PriceInfo struct {
	Retailer      string   `json:"retailer"`
	ProductName   string   `json:"productName"`
	CurrentPrice  float64  `json:"currentPrice"`
	Currency      string   `json:"currency"`
	Discount      *int     `json:"discount,omitempty"`      // percent, 1-99
	OriginalPrice *float64 `json:"originalPrice,omitempty"` // pre-discount price
	URL           string   `json:"url"`
	Source        string   `json:"source"`

	// NormalizedPrice is the USD-equivalent attached during ranking.
	// It is set on copies only; extraction never populates it.
	NormalizedPrice *float64 `json:"normalizedPrice,omitempty"`
}

// ComparisonResult is the envelope returned by the compare pipeline.
type ComparisonResult struct {
	Success     bool        `json:"success"`
	ProductName string      `json:"productName"`
	Results     []PriceInfo `json:"results"`
	Warnings    []string    `json:"warnings,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// CompareRequest is a price comparison request. Input is a product name or
// a product-page URL; Mode selects the provider subset ("all" by default).
type CompareRequest struct {
	Input string `json:"input" binding:"required"`
	Mode  string `json:"mode,omitempty"`
}
