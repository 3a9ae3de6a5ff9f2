package serpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricescout/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "google.com", client.domain)
	assert.False(t, client.debug)
}

func TestName(t *testing.T) {
	client := NewClient("test-api-key")

	assert.Equal(t, domain.SourceGoogle, client.Name())
}

func TestSearch_MissingAPIKey(t *testing.T) {
	client := NewClient("")

	results, err := client.Search(context.Background(), "gaming laptop", 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
	assert.Nil(t, results)
}

func TestExtractStructuredData(t *testing.T) {
	t.Run("top block maps to metatag slot", func(t *testing.T) {
		entry := map[string]interface{}{
			"rich_snippet": map[string]interface{}{
				"top": map[string]interface{}{
					"detected_extensions": map[string]interface{}{
						"price":    1299.99,
						"currency": "$",
					},
				},
			},
		}

		sd := extractStructuredData(entry)

		require.NotNil(t, sd)
		assert.Equal(t, "1299.99", sd.MetatagPrice)
		assert.Equal(t, "$", sd.MetatagCurrency)
		assert.Empty(t, sd.OfferPrice)
	})

	t.Run("bottom block maps to offer slot", func(t *testing.T) {
		entry := map[string]interface{}{
			"rich_snippet": map[string]interface{}{
				"bottom": map[string]interface{}{
					"detected_extensions": map[string]interface{}{
						"price":    float64(899),
						"currency": "GBP",
					},
				},
			},
		}

		sd := extractStructuredData(entry)

		require.NotNil(t, sd)
		assert.Empty(t, sd.MetatagPrice)
		assert.Equal(t, "899", sd.OfferPrice)
		assert.Equal(t, "GBP", sd.OfferCurrency)
	})

	t.Run("both blocks populate both slots", func(t *testing.T) {
		entry := map[string]interface{}{
			"rich_snippet": map[string]interface{}{
				"top": map[string]interface{}{
					"detected_extensions": map[string]interface{}{"price": "49.99"},
				},
				"bottom": map[string]interface{}{
					"detected_extensions": map[string]interface{}{"price": "44.99"},
				},
			},
		}

		sd := extractStructuredData(entry)

		require.NotNil(t, sd)
		assert.Equal(t, "49.99", sd.MetatagPrice)
		assert.Equal(t, "44.99", sd.OfferPrice)
	})

	t.Run("no rich snippet yields nil", func(t *testing.T) {
		assert.Nil(t, extractStructuredData(map[string]interface{}{"title": "x"}))
	})

	t.Run("rich snippet without price yields nil", func(t *testing.T) {
		entry := map[string]interface{}{
			"rich_snippet": map[string]interface{}{
				"top": map[string]interface{}{
					"detected_extensions": map[string]interface{}{"rating": 4.5},
				},
			},
		}

		assert.Nil(t, extractStructuredData(entry))
	})
}

func TestDetectedPrice(t *testing.T) {
	snippet := map[string]interface{}{
		"top": map[string]interface{}{
			"detected_extensions": map[string]interface{}{
				"price":    float64(120),
				"currency": "EUR",
			},
		},
	}

	price, currency, ok := detectedPrice(snippet, "top")
	require.True(t, ok)
	assert.Equal(t, "120", price)
	assert.Equal(t, "EUR", currency)

	_, _, ok = detectedPrice(snippet, "bottom")
	assert.False(t, ok)
}
