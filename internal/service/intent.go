package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"kantinchat/internal/model"
)

// Canonical category tags used for menu filtering. Raw keywords a user
// types are mapped onto these via the extractor's keyword table.
const (
	CategoryMinuman    = "minuman"
	CategorySarapan    = "sarapan"
	CategoryMakanSiang = "makan_siang"
	CategoryPedas      = "pedas"
)

// DefaultResultLimit is the result cap used when the caller does not ask
// for a specific one.
const DefaultResultLimit = 10

// DefaultCategoryKeywords maps message keywords to canonical category tags.
// "makan"/"makanan" land on the breakfast tag regardless of time of day;
// that mirrors the observed production mapping. Callers that disagree can
// pass their own table to NewIntentExtractor.
func DefaultCategoryKeywords() map[string]string {
	return map[string]string{
		"dingin":  CategoryMinuman,
		"es":      CategoryMinuman,
		"jus":     CategoryMinuman,
		"kopi":    CategoryMinuman,
		"teh":     CategoryMinuman,
		"minum":   CategoryMinuman,
		"minuman": CategoryMinuman,
		"sarapan": CategorySarapan,
		"pagi":    CategorySarapan,
		"makan":   CategorySarapan,
		"makanan": CategorySarapan,
		"siang":   CategoryMakanSiang,
		"pedas":   CategoryPedas,
	}
}

// Budget patterns, tried in order; the first match wins. The bare-digits
// pattern requires at least 4 digits so small counts ("2 porsi") are not
// mistaken for a budget.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*k\b`),
	regexp.MustCompile(`(\d+)\s*rb\b`),
	regexp.MustCompile(`rp\.?\s*(\d{1,3}(?:[.,]\d{3})+|\d+)`),
	regexp.MustCompile(`\b(\d{4,})\b`),
}

// Phrase-capture patterns for a menu name or search keyword, tried in order.
var phrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`harga\s+(.+?)\s*(?:\?|$)`),
	regexp.MustCompile(`berapa\s+(?:harga\s+)?(.+?)\s*(?:\?|$)`),
	regexp.MustCompile(`cari\s+(.+?)\s*(?:\?|$)`),
	regexp.MustCompile(`ada\s+(.+?)\s*(?:\?|$)`),
}

// intentRule pairs a pattern with the intent it resolves to. Rules are
// evaluated top to bottom and the first match wins, so the order encodes
// priority: opening hours outrank bundles outrank single-item questions
// outrank budget recommendations outrank plain search.
type intentRule struct {
	pattern *regexp.Regexp
	intent  model.Intent
}

var intentRules = []intentRule{
	{regexp.MustCompile(`jam\s+(buka|tutup|operasional)|buka\s+jam|tutup\s+jam|kapan\s+(buka|tutup)|jam\s+berapa`), model.IntentAskKantinInfo},
	{regexp.MustCompile(`\bpaket\b|\bcombo\b|\bbundling\b|\bsama\b|makan(an)?\s+(dan|\+)\s+minum(an)?`), model.IntentBundleRecommend},
	{regexp.MustCompile(`\bharga\b|\bberapa\b`), model.IntentAskItemInfo},
	{regexp.MustCompile(`\brekomendasi\b|\brekomen\b|\bsaran\b|\bbudget\b|\bmurah\b`), model.IntentRecommendBudget},
	{regexp.MustCompile(`\bcari\b|\bada\b|menu\s+apa|apa\s+saja`), model.IntentSearch},
}

type categoryRule struct {
	pattern *regexp.Regexp
	tag     string
}

// IntentExtractor turns a free-text message into an ExtractedIntent.
// It is pure and deterministic: no I/O, no state mutation.
type IntentExtractor struct {
	categoryRules []categoryRule
}

// NewIntentExtractor creates an extractor using the given keyword-to-tag
// table, or DefaultCategoryKeywords when keywords is nil.
func NewIntentExtractor(keywords map[string]string) *IntentExtractor {
	if keywords == nil {
		keywords = DefaultCategoryKeywords()
	}

	// Compile in sorted keyword order so extraction is deterministic.
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)

	rules := make([]categoryRule, 0, len(words))
	for _, w := range words {
		rules = append(rules, categoryRule{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`),
			tag:     keywords[w],
		})
	}
	return &IntentExtractor{categoryRules: rules}
}

// Extract parses the message into an intent plus its parameters.
// kantinID scopes the resulting queries; empty means all kantins.
func (e *IntentExtractor) Extract(message, kantinID string) model.ExtractedIntent {
	low := strings.ToLower(strings.TrimSpace(message))

	budget := extractBudget(low)
	categories := e.extractCategories(low)
	phrase := extractPhrase(low)
	intent := classify(low, budget, categories)

	result := model.ExtractedIntent{
		Intent:     intent,
		KantinID:   kantinID,
		Budget:     budget,
		Categories: categories,
		Limit:      DefaultResultLimit,
	}

	switch intent {
	case model.IntentAskItemInfo:
		result.MenuName = phrase
	case model.IntentSearch:
		result.Keyword = phrase
	}
	return result
}

// extractBudget returns the budget in rupiah, or nil when the message
// carries no recognizable amount.
func extractBudget(low string) *int64 {
	low = strings.ToLower(low)
	for i, p := range budgetPatterns {
		m := p.FindStringSubmatch(low)
		if m == nil {
			continue
		}
		raw := m[1]
		// grouped currency numbers keep their separators in the capture
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", "")
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if i < 2 {
			n *= 1000 // "20k" / "20rb" shorthand
		}
		if n < 0 {
			continue
		}
		return &n
	}
	return nil
}

// extractCategories returns the set of canonical tags whose keyword appears
// as a whole word, duplicates collapsed, in deterministic order.
func (e *IntentExtractor) extractCategories(low string) []string {
	seen := map[string]bool{}
	var tags []string
	for _, rule := range e.categoryRules {
		if seen[rule.tag] {
			continue
		}
		if rule.pattern.MatchString(low) {
			seen[rule.tag] = true
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

// extractPhrase returns the first captured menu-name/keyword phrase,
// trimmed and whitespace-normalized, or empty.
func extractPhrase(low string) string {
	for _, p := range phrasePatterns {
		m := p.FindStringSubmatch(low)
		if m == nil {
			continue
		}
		phrase := strings.Join(strings.Fields(m[1]), " ")
		if phrase != "" {
			return phrase
		}
	}
	return ""
}

// classify picks the intent by first-match-wins over the rule table, then
// falls back on extracted parameters before giving up as out of scope.
func classify(low string, budget *int64, categories []string) model.Intent {
	for _, rule := range intentRules {
		if rule.pattern.MatchString(low) {
			return rule.intent
		}
	}
	if budget != nil {
		return model.IntentRecommendBudget
	}
	if len(categories) > 0 {
		return model.IntentSearch
	}
	return model.IntentOutOfScope
}

// FoodCategories filters the given tags down to food tags, returning the
// default food tags when none are present.
func FoodCategories(tags []string) []string {
	var food []string
	for _, t := range tags {
		if t == CategorySarapan || t == CategoryMakanSiang {
			food = append(food, t)
		}
	}
	if len(food) == 0 {
		return []string{CategorySarapan, CategoryMakanSiang}
	}
	return food
}
