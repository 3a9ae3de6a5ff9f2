package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricescout/backend/internal/domain"
)

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
}

func TestExtractName_OGTitle(t *testing.T) {
	server := htmlServer(t, `<html><head>
		<meta property="og:title" content="Sony WH-1000XM5 Wireless Headphones | Sony Store">
		<title>Sony Store - Home</title>
	</head><body><h1>Welcome</h1></body></html>`)
	defer server.Close()

	scraper := NewScraper()
	name, err := scraper.ExtractName(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Sony WH-1000XM5 Wireless Headphones", name)
}

func TestExtractName_TitleFallback(t *testing.T) {
	server := htmlServer(t, `<html><head>
		<title>Dyson V15 Detect Vacuum - Buy online at BigStore</title>
	</head><body></body></html>`)
	defer server.Close()

	scraper := NewScraper()
	name, err := scraper.ExtractName(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Dyson V15 Detect Vacuum", name)
}

func TestExtractName_H1Fallback(t *testing.T) {
	server := htmlServer(t, `<html><head><title>ab</title></head>
		<body><h1>  Nintendo   Switch OLED  </h1></body></html>`)
	defer server.Close()

	scraper := NewScraper()
	name, err := scraper.ExtractName(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Nintendo Switch OLED", name)
}

func TestExtractName_NoUsableTitle(t *testing.T) {
	server := htmlServer(t, `<html><head><title></title></head><body></body></html>`)
	defer server.Close()

	scraper := NewScraper()
	name, err := scraper.ExtractName(context.Background(), server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNameNotFound)
	assert.Empty(t, name)
}

func TestExtractName_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	scraper := NewScraper()
	name, err := scraper.ExtractName(context.Background(), server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNameNotFound)
	assert.Empty(t, name)
}

func TestExtractName_SendsBrowserHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		w.Write([]byte(`<html><head><title>Apple iPhone 15 Pro</title></head></html>`))
	}))
	defer server.Close()

	scraper := NewScraper()
	name, err := scraper.ExtractName(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Apple iPhone 15 Pro", name)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "LG C3 OLED TV", "LG C3 OLED TV"},
		{"pipe separator", "LG C3 OLED TV | Currys", "LG C3 OLED TV"},
		{"dash separator", "LG C3 OLED TV - Argos", "LG C3 OLED TV"},
		{"store suffix", "LG C3 OLED TV Buy online at Currys", "LG C3 OLED TV"},
		{"collapses whitespace", "LG  C3   OLED TV", "LG C3 OLED TV"},
		{"too short", "ab", ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanTitle(tt.input))
		})
	}
}
