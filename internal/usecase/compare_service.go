package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pricescout/backend/internal/domain"
)

// ModeAll selects every configured provider.
const ModeAll = "all"

// CompareConfig holds configuration for the compare service
type CompareConfig struct {
	PrioritySource     string
	MaxResults         int
	CacheTTL           time.Duration
	ExchangeRates      map[string]float64
	EnableDebugLogging bool
}

// CompareService runs the full pipeline: query build, provider fan-out,
// aggregation, extraction, dedup and ranking.
type CompareService struct {
	providers     []domain.SearchProvider
	nameExtractor domain.ProductNameExtractor
	cache         domain.CacheRepository

	aggregator   *Aggregator
	extractor    *PriceExtractor
	deduplicator *RetailerDeduplicator
	ranker       *Ranker

	maxResults         int
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewCompareService wires the pipeline stages. providers must be given in
// merge-priority order; nameExtractor and cache may be nil (URL inputs then
// fail and results are simply not cached).
func NewCompareService(
	providers []domain.SearchProvider,
	nameExtractor domain.ProductNameExtractor,
	cache domain.CacheRepository,
	config CompareConfig,
) *CompareService {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	normalizer := NewCurrencyNormalizer(config.ExchangeRates)

	return &CompareService{
		providers:          providers,
		nameExtractor:      nameExtractor,
		cache:              cache,
		aggregator:         NewAggregator(config.EnableDebugLogging),
		extractor:          NewPriceExtractor(config.PrioritySource, config.EnableDebugLogging),
		deduplicator:       NewRetailerDeduplicator(config.PrioritySource, config.EnableDebugLogging),
		ranker:             NewRanker(normalizer),
		maxResults:         maxResults,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Compare runs a price comparison for a product name or product-page URL.
// mode selects the provider subset: "all" (default) or a provider name.
// The returned ComparisonResult is always non-nil; on failure its Success
// flag is false and the error is also returned for transport mapping.
func (s *CompareService) Compare(ctx context.Context, input, mode string) (*domain.ComparisonResult, error) {
	if mode == "" {
		mode = ModeAll
	}

	providers, err := s.selectProviders(mode)
	if err != nil {
		return failureResult("", err), err
	}

	productName := strings.TrimSpace(input)
	if productName == "" {
		return failureResult("", domain.ErrEmptyQuery), domain.ErrEmptyQuery
	}

	if isProductURL(productName) {
		name, scrapeErr := s.extractProductName(ctx, productName)
		if scrapeErr != nil {
			return failureResult("", scrapeErr), scrapeErr
		}
		productName = name
	}

	query, err := BuildQuery(productName)
	if err != nil {
		return failureResult(productName, err), err
	}

	cacheKey := s.cacheKey(query, mode)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		if s.enableDebugLogging {
			log.Printf("[COMPARE] Cache hit for %q", query)
		}
		return cached, nil
	}

	log.Printf("[COMPARE] Searching %d provider(s) for %q", len(providers), query)

	resultSets, warnings := s.fanOut(ctx, query, providers)
	if len(resultSets) == 0 {
		err := fmt.Errorf("%w: %s", domain.ErrAllProvidersFailed, strings.Join(warnings, "; "))
		return failureResult(productName, err), err
	}

	merged, err := s.aggregator.Aggregate(resultSets)
	if err != nil {
		result := failureResult(productName, err)
		result.Warnings = warnings
		return result, err
	}

	prices := make([]domain.PriceInfo, 0, len(merged))
	for _, searchResult := range merged {
		if info, ok := s.extractor.Extract(searchResult); ok {
			prices = append(prices, *info)
		}
	}

	if len(prices) == 0 {
		result := failureResult(productName, domain.ErrNoPricesFound)
		result.Warnings = warnings
		return result, domain.ErrNoPricesFound
	}

	deduped := s.deduplicator.Dedupe(prices)
	ranked := s.ranker.SortByPriceAsc(deduped)

	log.Printf("[COMPARE] %d result(s), %d with prices, %d after dedup for %q",
		len(merged), len(prices), len(ranked), query)

	result := &domain.ComparisonResult{
		Success:     true,
		ProductName: productName,
		Results:     ranked,
		Warnings:    warnings,
	}

	s.toCache(ctx, cacheKey, result)

	return result, nil
}

// selectProviders resolves a mode into a provider subset.
func (s *CompareService) selectProviders(mode string) ([]domain.SearchProvider, error) {
	if mode == ModeAll {
		return s.providers, nil
	}
	for _, provider := range s.providers {
		if provider.Name() == mode {
			return []domain.SearchProvider{provider}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
}

// fanOut queries every provider concurrently and settles all of them:
// failures are collected as warnings, never aborting the others. Result
// sets come back in provider order with failed providers omitted.
func (s *CompareService) fanOut(ctx context.Context, query string, providers []domain.SearchProvider) ([][]domain.SearchResult, []string) {
	type outcome struct {
		results []domain.SearchResult
		err     error
	}

	outcomes := make([]outcome, len(providers))

	var wg sync.WaitGroup
	for i, provider := range providers {
		wg.Add(1)
		go func(i int, provider domain.SearchProvider) {
			defer wg.Done()
			results, err := provider.Search(ctx, query, s.maxResults)
			outcomes[i] = outcome{results: results, err: err}
		}(i, provider)
	}
	wg.Wait()

	var resultSets [][]domain.SearchResult
	var warnings []string

	for i, o := range outcomes {
		if o.err != nil {
			log.Printf("[COMPARE] Provider %s failed: %v", providers[i].Name(), o.err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", providers[i].Name(), o.err))
			continue
		}
		resultSets = append(resultSets, o.results)
	}

	return resultSets, warnings
}

// extractProductName resolves a product-page URL into a product name via
// the configured scraper.
func (s *CompareService) extractProductName(ctx context.Context, pageURL string) (string, error) {
	if s.nameExtractor == nil {
		return "", domain.ErrProductNameNotFound
	}

	name, err := s.nameExtractor.ExtractName(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProductNameNotFound, err)
	}
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrProductNameNotFound
	}

	if s.enableDebugLogging {
		log.Printf("[COMPARE] Extracted product name %q from %s", name, pageURL)
	}

	return name, nil
}

func (s *CompareService) cacheKey(query, mode string) string {
	return fmt.Sprintf("compare:%s:%s", strings.ToLower(query), mode)
}

func (s *CompareService) fromCache(ctx context.Context, key string) *domain.ComparisonResult {
	if s.cache == nil {
		return nil
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	result, ok := value.(*domain.ComparisonResult)
	if !ok {
		return nil
	}
	return result
}

func (s *CompareService) toCache(ctx context.Context, key string, result *domain.ComparisonResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		log.Printf("[COMPARE] Failed to cache result: %v", err)
	}
}

// isProductURL reports whether the input looks like a page URL rather than
// a product name.
func isProductURL(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func failureResult(productName string, err error) *domain.ComparisonResult {
	return &domain.ComparisonResult{
		Success:     false,
		ProductName: productName,
		Results:     []domain.PriceInfo{},
		Error:       err.Error(),
	}
}
