package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pricescout/backend/config"
	"github.com/pricescout/backend/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubComparer returns a canned result/error pair for every request.
type stubComparer struct {
	result *domain.ComparisonResult
	err    error

	lastInput string
	lastMode  string
}

func (s *stubComparer) Compare(ctx context.Context, input, mode string) (*domain.ComparisonResult, error) {
	s.lastInput = input
	s.lastMode = mode
	return s.result, s.err
}

func successResult() *domain.ComparisonResult {
	return &domain.ComparisonResult{
		Success:     true,
		ProductName: "gaming laptop",
		Results: []domain.PriceInfo{
			{Retailer: "Amazon", CurrentPrice: 999.99, Currency: domain.CurrencyUSD, URL: "https://amazon.com/dp/1", Source: domain.SourceGoogle},
		},
	}
}

func failedResult(err error) *domain.ComparisonResult {
	return &domain.ComparisonResult{
		Success: false,
		Results: []domain.PriceInfo{},
		Error:   err.Error(),
	}
}

// setupTestRouter creates a test router around a stub comparer
func setupTestRouter(comparer PriceComparer) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	return SetupRouter(cfg, NewHandler(comparer))
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(&stubComparer{})

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "pricescout-backend" {
		t.Errorf("service = %v, want pricescout-backend", response["service"])
	}
}

func TestComparePricesEndpoint(t *testing.T) {
	t.Run("returns comparison result on success", func(t *testing.T) {
		comparer := &stubComparer{result: successResult()}
		router := setupTestRouter(comparer)

		body := strings.NewReader(`{"input": "gaming laptop", "mode": "all"}`)
		req, _ := http.NewRequest("POST", "/api/v1/prices/compare", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var response domain.ComparisonResult
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if !response.Success {
			t.Error("Success = false, want true")
		}
		if len(response.Results) != 1 {
			t.Errorf("len(Results) = %d, want 1", len(response.Results))
		}
		if comparer.lastInput != "gaming laptop" || comparer.lastMode != "all" {
			t.Errorf("comparer called with (%q, %q)", comparer.lastInput, comparer.lastMode)
		}
	})

	t.Run("rejects body without input field", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{result: successResult()})

		body := strings.NewReader(`{"mode": "all"}`)
		req, _ := http.NewRequest("POST", "/api/v1/prices/compare", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{result: successResult()})

		body := strings.NewReader(`{not json`)
		req, _ := http.NewRequest("POST", "/api/v1/prices/compare", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 503 when comparer not configured", func(t *testing.T) {
		router := setupTestRouter(nil)

		body := strings.NewReader(`{"input": "gaming laptop"}`)
		req, _ := http.NewRequest("POST", "/api/v1/prices/compare", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestComparePricesQueryEndpoint(t *testing.T) {
	comparer := &stubComparer{result: successResult()}
	router := setupTestRouter(comparer)

	req, _ := http.NewRequest("GET", "/api/v1/prices/compare?q=gaming+laptop&mode=brave", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if comparer.lastInput != "gaming laptop" || comparer.lastMode != "brave" {
		t.Errorf("comparer called with (%q, %q)", comparer.lastInput, comparer.lastMode)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty query", domain.ErrEmptyQuery, http.StatusBadRequest},
		{"invalid mode", domain.ErrInvalidMode, http.StatusBadRequest},
		{"product name not found", domain.ErrProductNameNotFound, http.StatusUnprocessableEntity},
		{"no results", domain.ErrNoResults, http.StatusNotFound},
		{"no prices found", domain.ErrNoPricesFound, http.StatusNotFound},
		{"all providers failed", domain.ErrAllProvidersFailed, http.StatusBadGateway},
		{"unexpected error", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparer := &stubComparer{result: failedResult(tt.err), err: tt.err}
			router := setupTestRouter(comparer)

			body := strings.NewReader(`{"input": "gaming laptop"}`)
			req, _ := http.NewRequest("POST", "/api/v1/prices/compare", body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Status = %d, want %d", w.Code, tt.want)
			}

			var response domain.ComparisonResult
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response.Success {
				t.Error("Success = true in error response, want false")
			}
			if response.Error == "" {
				t.Error("Error field empty in error response")
			}
		})
	}
}
