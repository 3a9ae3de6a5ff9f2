package usecase

import (
	"sort"

	"github.com/pricescout/backend/internal/domain"
)

// Ranker orders and filters price listings. Every method operates on an
// annotated copy of its input; callers' slices are never mutated.
type Ranker struct {
	normalizer *CurrencyNormalizer
}

// NewRanker creates a ranker backed by the given currency normalizer.
func NewRanker(normalizer *CurrencyNormalizer) *Ranker {
	if normalizer == nil {
		normalizer = NewCurrencyNormalizer(nil)
	}
	return &Ranker{normalizer: normalizer}
}

// annotate copies the input and attaches the USD-equivalent price to each
// copy. The originals keep their NormalizedPrice untouched.
func (r *Ranker) annotate(prices []domain.PriceInfo) []domain.PriceInfo {
	annotated := make([]domain.PriceInfo, len(prices))
	copy(annotated, prices)
	for i := range annotated {
		normalized := r.normalizer.Normalize(annotated[i].CurrentPrice, annotated[i].Currency)
		annotated[i].NormalizedPrice = &normalized
	}
	return annotated
}

// SortByPriceAsc returns the listings ordered cheapest first by normalized
// price. The sort is stable: ties keep input order.
func (r *Ranker) SortByPriceAsc(prices []domain.PriceInfo) []domain.PriceInfo {
	annotated := r.annotate(prices)
	sort.SliceStable(annotated, func(i, j int) bool {
		return *annotated[i].NormalizedPrice < *annotated[j].NormalizedPrice
	})
	return annotated
}

// SortByPriceDesc returns the listings ordered most expensive first.
func (r *Ranker) SortByPriceDesc(prices []domain.PriceInfo) []domain.PriceInfo {
	annotated := r.annotate(prices)
	sort.SliceStable(annotated, func(i, j int) bool {
		return *annotated[i].NormalizedPrice > *annotated[j].NormalizedPrice
	})
	return annotated
}

// SortByDiscount returns the listings ordered by descending discount
// percentage. Listings without a discount sort last.
func (r *Ranker) SortByDiscount(prices []domain.PriceInfo) []domain.PriceInfo {
	annotated := r.annotate(prices)
	sort.SliceStable(annotated, func(i, j int) bool {
		return discountOf(annotated[i]) > discountOf(annotated[j])
	})
	return annotated
}

func discountOf(price domain.PriceInfo) int {
	if price.Discount == nil {
		return 0
	}
	return *price.Discount
}

// FilterByMaxPrice keeps listings whose normalized price is at most max.
func (r *Ranker) FilterByMaxPrice(prices []domain.PriceInfo, max float64) []domain.PriceInfo {
	annotated := r.annotate(prices)
	filtered := make([]domain.PriceInfo, 0, len(annotated))
	for _, price := range annotated {
		if *price.NormalizedPrice <= max {
			filtered = append(filtered, price)
		}
	}
	return filtered
}

// FilterByMinDiscount keeps listings whose discount is at least min.
// Listings without a discount are excluded.
func (r *Ranker) FilterByMinDiscount(prices []domain.PriceInfo, min int) []domain.PriceInfo {
	annotated := r.annotate(prices)
	filtered := make([]domain.PriceInfo, 0, len(annotated))
	for _, price := range annotated {
		if price.Discount != nil && *price.Discount >= min {
			filtered = append(filtered, price)
		}
	}
	return filtered
}
