package usecase

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pricescout/backend/internal/domain"
)

// Amount sub-patterns. The comma/dot-grouped alternative comes first so the
// regex engine prefers the full "1,299.99" form over a bare "1" prefix.
const (
	amountUS = `(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`
	amountEU = `(\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?|\d+(?:,\d{1,2})?)`
)

// pricePattern pairs a compiled pattern with its currency resolution rule.
// Currency is either fixed or read from a capture group (currencyGroup > 0).
type pricePattern struct {
	re            *regexp.Regexp
	currency      string
	amountGroup   int
	currencyGroup int
}

// pricePatterns are evaluated in fixed precedence. The C$/A$ prefixes come
// before the bare dollar sign so "C$59.99" resolves to CAD, not USD.
var pricePatterns = []pricePattern{
	{re: regexp.MustCompile(`(?i)\bC(?:A|AD)?\s*\$\s*` + amountUS), currency: domain.CurrencyCAD, amountGroup: 1},
	{re: regexp.MustCompile(`(?i)\bA(?:U|UD)?\s*\$\s*` + amountUS), currency: domain.CurrencyAUD, amountGroup: 1},
	{re: regexp.MustCompile(`(?i)\b` + amountUS + `\s*(USD|GBP|EUR|CAD|AUD)\b`), amountGroup: 1, currencyGroup: 2},
	{re: regexp.MustCompile(`\$\s*` + amountUS), currency: domain.CurrencyUSD, amountGroup: 1},
	{re: regexp.MustCompile(`£\s*` + amountUS), currency: domain.CurrencyGBP, amountGroup: 1},
	{re: regexp.MustCompile(`€\s*` + amountEU), currency: domain.CurrencyEUR, amountGroup: 1},
}

// discountPatterns capture an explicit percentage-off figure (1-99). The
// digit-leading patterns guard their left side so "150% off" is not read
// as a 50% discount; the keyword-leading ones are bounded by the keyword.
var discountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|[^\d.])(\d{1,2})\s*%\s*off\b`),
	regexp.MustCompile(`(?i)\bsave\s*(\d{1,2})\s*%`),
	regexp.MustCompile(`(?i)(?:^|[^\d.])(\d{1,2})\s*%\s*discount\b`),
	regexp.MustCompile(`(?i)\bdiscount:?\s*(\d{1,2})\s*%`),
}

// wasPricePatterns capture a pre-discount price in the currency the current
// price was found in. The symbol must match so a GBP listing doesn't pick
// up a USD "was" price from an unrelated snippet fragment.
var wasPricePatterns = map[string]*regexp.Regexp{
	domain.CurrencyUSD: regexp.MustCompile(`(?i)\b(?:was|originally|orig\.?|regular(?:ly)?(?:\s+price)?):?\s*\$\s*` + amountUS),
	domain.CurrencyCAD: regexp.MustCompile(`(?i)\b(?:was|originally|orig\.?|regular(?:ly)?(?:\s+price)?):?\s*C?(?:A|AD)?\s*\$\s*` + amountUS),
	domain.CurrencyAUD: regexp.MustCompile(`(?i)\b(?:was|originally|orig\.?|regular(?:ly)?(?:\s+price)?):?\s*A?(?:U|UD)?\s*\$\s*` + amountUS),
	domain.CurrencyGBP: regexp.MustCompile(`(?i)\b(?:was|originally|orig\.?|regular(?:ly)?(?:\s+price)?):?\s*£\s*` + amountUS),
	domain.CurrencyEUR: regexp.MustCompile(`(?i)\b(?:was|originally|orig\.?|regular(?:ly)?(?:\s+price)?):?\s*€\s*` + amountEU),
}

// retailerSuffixes are well-known retailer names stripped from the end of
// result titles ("Gaming Laptop - Amazon.com" -> "Gaming Laptop").
var retailerSuffixes = []string{
	"Amazon.com", "Amazon", "eBay", "Walmart.com", "Walmart", "Target",
	"Best Buy", "Costco", "Newegg.com", "Newegg", "Argos", "Currys",
	"John Lewis", "AliExpress", "Etsy", "Wayfair",
}

var (
	structuredAmountCleanRe = regexp.MustCompile(`[^0-9.]`)
	multiSpaceRe            = regexp.MustCompile(`\s+`)
)

// contextWindow is how many characters around a candidate match are
// inspected by the exclusion predicates.
const contextWindow = 20

// PriceExtractor produces at most one PriceInfo per search result.
type PriceExtractor struct {
	structuredSource   string
	enableDebugLogging bool
}

// NewPriceExtractor creates a price extractor. structuredSource names the
// provider whose results may carry machine-readable offer data.
func NewPriceExtractor(structuredSource string, enableDebugLogging bool) *PriceExtractor {
	if structuredSource == "" {
		structuredSource = domain.SourceGoogle
	}
	return &PriceExtractor{
		structuredSource:   structuredSource,
		enableDebugLogging: enableDebugLogging,
	}
}

// Extract attempts structured extraction first, then text scanning. The
// second return value is false when no plausible price was found, which is
// common and not an error.
func (e *PriceExtractor) Extract(result domain.SearchResult) (*domain.PriceInfo, bool) {
	blob := strings.TrimSpace(result.Title + " " + result.Snippet + " " + result.Description)

	var (
		price    float64
		currency string
		found    bool
	)

	if result.Source == e.structuredSource && result.StructuredData != nil {
		price, currency, found = extractStructuredPrice(result.StructuredData)
		if found && e.enableDebugLogging {
			log.Printf("[EXTRACT] Structured price %.2f %s from %s", price, currency, result.URL)
		}
	}

	if !found {
		price, currency, found = extractTextPrice(blob)
	}

	if !found {
		if e.enableDebugLogging {
			log.Printf("[EXTRACT] No price found in %q", result.Title)
		}
		return nil, false
	}

	retailer := RetailerFromURL(result.URL)

	info := &domain.PriceInfo{
		Retailer:     retailer,
		CurrentPrice: price,
		Currency:     currency,
		URL:          result.URL,
		Source:       result.Source,
	}

	// Discount evidence always comes from the text blob, even when the
	// price itself came from structured data.
	info.Discount = extractDiscountPercent(blob)

	if original := extractOriginalPrice(blob, currency); original != nil && isValidPrice(*original) {
		info.OriginalPrice = original
	}

	if info.Discount == nil && info.OriginalPrice != nil && *info.OriginalPrice > info.CurrentPrice {
		derived := int(math.Round((*info.OriginalPrice - info.CurrentPrice) / *info.OriginalPrice * 100))
		if derived >= 1 && derived <= 99 {
			info.Discount = &derived
		}
	}

	info.ProductName = cleanProductName(result.Title)

	return info, true
}

// extractStructuredPrice reads provider-attached offer data: metatag-style
// fields first, then offer-style fields. Currency defaults to USD.
func extractStructuredPrice(sd *domain.StructuredData) (float64, string, bool) {
	if amount, ok := parseStructuredAmount(sd.MetatagPrice); ok {
		return amount, normalizeCurrencyCode(sd.MetatagCurrency), true
	}
	if amount, ok := parseStructuredAmount(sd.OfferPrice); ok {
		return amount, normalizeCurrencyCode(sd.OfferCurrency), true
	}
	return 0, "", false
}

// parseStructuredAmount strips everything but digits and decimal points
// from a raw structured price field and validates the result.
func parseStructuredAmount(raw string) (float64, bool) {
	cleaned := structuredAmountCleanRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !isValidPrice(amount) {
		return 0, false
	}
	return amount, true
}

// normalizeCurrencyCode maps a structured currency field onto the closed
// currency set, defaulting to USD for anything unrecognized.
func normalizeCurrencyCode(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case domain.CurrencyUSD, "$", "US$":
		return domain.CurrencyUSD
	case domain.CurrencyGBP, "£":
		return domain.CurrencyGBP
	case domain.CurrencyEUR, "€":
		return domain.CurrencyEUR
	case domain.CurrencyCAD, "C$", "CA$":
		return domain.CurrencyCAD
	case domain.CurrencyAUD, "A$", "AU$":
		return domain.CurrencyAUD
	default:
		return domain.CurrencyUSD
	}
}

// extractTextPrice scans text with the ordered pattern list and returns the
// first candidate that survives every contextual exclusion.
func extractTextPrice(text string) (float64, string, bool) {
	for _, p := range pricePatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if excludedByContext(text, m[0], m[1]) {
				continue
			}

			raw := text[m[2*p.amountGroup] : m[2*p.amountGroup+1]]
			currency := p.currency
			if p.currencyGroup > 0 {
				currency = strings.ToUpper(text[m[2*p.currencyGroup]:m[2*p.currencyGroup+1]])
			}

			amount, err := parseAmount(raw, currency)
			if err != nil || !isValidPrice(amount) {
				continue
			}

			return amount, currency, true
		}
	}
	return 0, "", false
}

// excludedByContext applies the false-positive predicates over a bounded
// window around a candidate match.
func excludedByContext(text string, start, end int) bool {
	before := strings.ToLower(text[max(0, start-contextWindow):start])
	after := strings.ToLower(text[end:min(len(text), end+contextWindow)])

	return isPerUnitPrice(after) ||
		isShippingThreshold(before, after) ||
		isInstallmentPrice(before, after) ||
		isRangeFilter(before) ||
		isPriceRangeBound(before, after)
}

var perUnitRe = regexp.MustCompile(`^\s*/\s*(?:oz|lbs?|kg|g|gal|ml|l|each|ea|ct|count|item|unit)\b`)

// isPerUnitPrice rejects "$3.99/oz" style per-unit pricing.
func isPerUnitPrice(after string) bool {
	return perUnitRe.MatchString(after)
}

// isShippingThreshold rejects "free shipping on $35+" style thresholds.
func isShippingThreshold(before, after string) bool {
	if strings.Contains(before, "free shipping") || strings.Contains(before, "shipping on") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(after), "+") && strings.Contains(before, "shipping")
}

var (
	installmentBeforeRe = regexp.MustCompile(`(?:payments?|installments?|instalments?)\s+of\s*$`)
	installmentAfterRe  = regexp.MustCompile(`^\s*(?:/|per\s*)mo(?:nth)?\b`)
)

// isInstallmentPrice rejects "4 payments of $25" and "$25/month" figures.
func isInstallmentPrice(before, after string) bool {
	return installmentBeforeRe.MatchString(before) || installmentAfterRe.MatchString(after)
}

var rangeFilterRe = regexp.MustCompile(`\b(?:under|less than|over|below|up to)\s*$`)

// isRangeFilter rejects "under $500" style filter phrases. "from $X" is
// deliberately allowed: it is a legitimate price lead-in.
func isRangeFilter(before string) bool {
	return rangeFilterRe.MatchString(before)
}

var (
	rangeBoundBeforeRe = regexp.MustCompile(`(?:c\$|a\$|ca\$|au\$|[$£€])\s*\d[\d,.]*\s*[-–—]\s*$`)
	rangeBoundAfterRe  = regexp.MustCompile(`^\s*[-–—]\s*(?:c\$|a\$|ca\$|au\$|[$£€])`)
)

// isPriceRangeBound rejects either end of a "$10-$20" range. The before
// check requires a preceding currency amount so ordinary "Product - $99"
// titles are not mistaken for ranges.
func isPriceRangeBound(before, after string) bool {
	return rangeBoundBeforeRe.MatchString(before) || rangeBoundAfterRe.MatchString(after)
}

// parseAmount parses a matched amount string. US/UK comma-thousands format
// by default; EUR supports "1.299,50" and "1299,50".
func parseAmount(raw, currency string) (float64, error) {
	s := strings.TrimSpace(raw)

	if currency == domain.CurrencyEUR {
		hasDot := strings.Contains(s, ".")
		hasComma := strings.Contains(s, ",")
		switch {
		case hasDot && hasComma:
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		case hasComma:
			s = strings.ReplaceAll(s, ",", ".")
		}
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	return strconv.ParseFloat(s, 64)
}

// isValidPrice bounds-checks an extracted amount.
func isValidPrice(amount float64) bool {
	return amount > domain.MinPrice && amount < domain.MaxPrice
}

// extractDiscountPercent finds an explicit percentage-off figure in the
// text. Only 1-99 is accepted.
func extractDiscountPercent(text string) *int {
	for _, re := range discountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil || value < 1 || value > 99 {
			continue
		}
		return &value
	}
	return nil
}

// extractOriginalPrice finds a "was"/"originally"/"regular" price in the
// same currency as the current price.
func extractOriginalPrice(text, currency string) *float64 {
	re, ok := wasPricePatterns[currency]
	if !ok {
		return nil
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := parseAmount(m[1], currency)
	if err != nil {
		return nil
	}
	return &amount
}

// cleanProductName strips price, discount and retailer-suffix substrings
// from a result title. Falls back to the unmodified title when nothing
// survives the stripping.
func cleanProductName(title string) string {
	name := title

	for _, p := range pricePatterns {
		name = p.re.ReplaceAllString(name, "")
	}
	for _, re := range discountPatterns {
		name = re.ReplaceAllString(name, "")
	}
	for _, re := range wasPricePatterns {
		name = re.ReplaceAllString(name, "")
	}

	for _, retailer := range retailerSuffixes {
		lower := strings.ToLower(name)
		for _, sep := range []string{" - ", " | ", " – ", " — ", " at "} {
			suffix := strings.ToLower(sep + retailer)
			if strings.HasSuffix(lower, suffix) {
				name = name[:len(name)-len(suffix)]
				lower = strings.ToLower(name)
			}
		}
	}

	name = multiSpaceRe.ReplaceAllString(name, " ")
	name = strings.Trim(name, " \t-–—:|,.")

	if name == "" {
		return title
	}
	return name
}
