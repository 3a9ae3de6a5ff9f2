package usecase

import (
	"testing"

	"github.com/pricescout/backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func rankerFixture() []domain.PriceInfo {
	return []domain.PriceInfo{
		{Retailer: "Amazon", CurrentPrice: 100, Currency: domain.CurrencyUSD, URL: "https://amazon.com/dp/1"},
		{Retailer: "Argos", CurrentPrice: 50, Currency: domain.CurrencyGBP, URL: "https://argos.co.uk/p/2", Discount: intPtr(10)},
		{Retailer: "Ebay", CurrentPrice: 60, Currency: domain.CurrencyUSD, URL: "https://ebay.com/itm/3", Discount: intPtr(30)},
	}
}

func TestSortByPriceAsc(t *testing.T) {
	ranker := NewRanker(NewCurrencyNormalizer(nil))

	t.Run("orders ascending by normalized price", func(t *testing.T) {
		sorted := ranker.SortByPriceAsc(rankerFixture())

		// GBP 50 normalizes to 63.5, so: 60 USD, 63.5, 100 USD
		wantRetailers := []string{"Ebay", "Argos", "Amazon"}
		for i, want := range wantRetailers {
			if sorted[i].Retailer != want {
				t.Errorf("position %d = %s, want %s", i, sorted[i].Retailer, want)
			}
		}

		for i := 0; i+1 < len(sorted); i++ {
			if *sorted[i].NormalizedPrice > *sorted[i+1].NormalizedPrice {
				t.Errorf("not ascending at %d: %v > %v", i, *sorted[i].NormalizedPrice, *sorted[i+1].NormalizedPrice)
			}
		}
	})

	t.Run("attaches normalized prices to copies only", func(t *testing.T) {
		input := rankerFixture()
		sorted := ranker.SortByPriceAsc(input)

		for i := range input {
			if input[i].NormalizedPrice != nil {
				t.Errorf("input[%d].NormalizedPrice mutated", i)
			}
		}
		for i := range sorted {
			if sorted[i].NormalizedPrice == nil {
				t.Errorf("sorted[%d].NormalizedPrice not set", i)
			}
		}
	})

	t.Run("sorting is idempotent", func(t *testing.T) {
		once := ranker.SortByPriceAsc(rankerFixture())
		twice := ranker.SortByPriceAsc(once)

		if len(once) != len(twice) {
			t.Fatalf("length changed: %d vs %d", len(once), len(twice))
		}
		for i := range once {
			if once[i].Retailer != twice[i].Retailer {
				t.Errorf("order changed at %d: %s vs %s", i, once[i].Retailer, twice[i].Retailer)
			}
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		prices := []domain.PriceInfo{
			{Retailer: "First", CurrentPrice: 10, Currency: domain.CurrencyUSD},
			{Retailer: "Second", CurrentPrice: 10, Currency: domain.CurrencyUSD},
			{Retailer: "Third", CurrentPrice: 10, Currency: domain.CurrencyUSD},
		}

		sorted := ranker.SortByPriceAsc(prices)
		for i, want := range []string{"First", "Second", "Third"} {
			if sorted[i].Retailer != want {
				t.Errorf("position %d = %s, want %s (stable)", i, sorted[i].Retailer, want)
			}
		}
	})
}

func TestSortByPriceDesc(t *testing.T) {
	ranker := NewRanker(NewCurrencyNormalizer(nil))

	sorted := ranker.SortByPriceDesc(rankerFixture())
	for i, want := range []string{"Amazon", "Argos", "Ebay"} {
		if sorted[i].Retailer != want {
			t.Errorf("position %d = %s, want %s", i, sorted[i].Retailer, want)
		}
	}
}

func TestSortByDiscount(t *testing.T) {
	ranker := NewRanker(NewCurrencyNormalizer(nil))

	sorted := ranker.SortByDiscount(rankerFixture())

	// Ebay 30%, Argos 10%, Amazon (no discount) last
	for i, want := range []string{"Ebay", "Argos", "Amazon"} {
		if sorted[i].Retailer != want {
			t.Errorf("position %d = %s, want %s", i, sorted[i].Retailer, want)
		}
	}
	if sorted[len(sorted)-1].Discount != nil {
		t.Error("entry without discount should sort last")
	}
}

func TestFilterByMaxPrice(t *testing.T) {
	ranker := NewRanker(NewCurrencyNormalizer(nil))

	filtered := ranker.FilterByMaxPrice(rankerFixture(), 70)
	if len(filtered) != 2 {
		t.Fatalf("len = %d, want 2", len(filtered))
	}
	for _, price := range filtered {
		if *price.NormalizedPrice > 70 {
			t.Errorf("normalized price %v above threshold", *price.NormalizedPrice)
		}
	}
}

func TestFilterByMinDiscount(t *testing.T) {
	ranker := NewRanker(NewCurrencyNormalizer(nil))

	t.Run("keeps discounts at or above threshold", func(t *testing.T) {
		filtered := ranker.FilterByMinDiscount(rankerFixture(), 10)
		if len(filtered) != 2 {
			t.Fatalf("len = %d, want 2", len(filtered))
		}
	})

	t.Run("excludes entries without a discount", func(t *testing.T) {
		filtered := ranker.FilterByMinDiscount(rankerFixture(), 1)
		for _, price := range filtered {
			if price.Discount == nil {
				t.Errorf("entry without discount kept: %s", price.Retailer)
			}
		}
	})
}
