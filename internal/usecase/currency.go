package usecase

import "github.com/pricescout/backend/internal/domain"

// DefaultExchangeRates returns the fixed USD-conversion table. Swapping in
// a live-rate source later is a pure substitution at this boundary.
func DefaultExchangeRates() map[string]float64 {
	return map[string]float64{
		domain.CurrencyUSD: 1.0,
		domain.CurrencyGBP: 1.27,
		domain.CurrencyEUR: 1.09,
		domain.CurrencyCAD: 0.74,
		domain.CurrencyAUD: 0.66,
	}
}

// CurrencyNormalizer converts amounts to their USD equivalent using a rate
// table injected at construction. The table is copied so later mutation of
// the caller's map cannot change conversion behavior.
type CurrencyNormalizer struct {
	rates map[string]float64
}

// NewCurrencyNormalizer creates a normalizer; a nil or empty table falls
// back to DefaultExchangeRates.
func NewCurrencyNormalizer(rates map[string]float64) *CurrencyNormalizer {
	if len(rates) == 0 {
		rates = DefaultExchangeRates()
	}

	copied := make(map[string]float64, len(rates))
	for code, rate := range rates {
		copied[code] = rate
	}

	return &CurrencyNormalizer{rates: copied}
}

// Normalize converts an amount to the reference currency. Unknown currency
// codes convert at rate 1.0.
func (n *CurrencyNormalizer) Normalize(amount float64, currency string) float64 {
	rate, ok := n.rates[currency]
	if !ok {
		rate = 1.0
	}
	return amount * rate
}
