// Package keywords finds domain keywords in free text using a fixed catalog
// of categorized patterns, scores each hit by its surrounding context and
// ranks the distinct keywords.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/career-analyzer/internal/types"
)

const (
	// DefaultMinConfidence drops matches scored below it.
	DefaultMinConfidence = 0.7
	// TopN is the length of the ranked keyword list.
	TopN = 10

	contextRadius = 50

	baseConfidence     = 0.8
	certificationBonus = 0.15
	experienceBonus    = 0.10
	projectBonus       = 0.05
	vendorBonus        = 0.10

	frequencyWeight  = 0.6
	confidenceWeight = 0.4
)

var (
	certificationCues = cueRegexp("certified", "certification", "certificate", "credential", "accredited", "licensed")
	experienceCues    = cueRegexp("experience", "experienced", "years", "proficient", "proficiency", "expert", "expertise", "skilled", "advanced")
	projectCues       = cueRegexp("project", "projects", "built", "developed", "implemented", "designed", "deployed", "delivered")
	vendorCues        = cueRegexp("aws", "amazon", "microsoft", "azure", "google", "gcp", "cisco", "oracle", "comptia", "red hat", "pmi", "scrum", "cncf", "isc2", "salesforce")

	reWhitespace = regexp.MustCompile(`\s+`)
)

func cueRegexp(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
}

// Normalize replaces every rune outside letters, digits, whitespace and
// ". + # - /" with a space, then collapses whitespace runs to one space.
func Normalize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return r
		case strings.ContainsRune(".+#-/", r):
			return r
		}
		return ' '
	}, text)
	return strings.TrimSpace(reWhitespace.ReplaceAllString(cleaned, " "))
}

// Extract scans text against the catalog and returns the matches at or above
// minConfidence grouped by category, plus the ranked top keywords.
func Extract(text string, minConfidence float64) types.KeywordSummary {
	if strings.TrimSpace(text) == "" {
		return failed("No text provided for keyword extraction", minConfidence)
	}
	if !utf8.ValidString(text) {
		return failed("Input is not valid UTF-8 text", minConfidence)
	}

	normalized := Normalize(text)

	byCategory := make(map[types.KeywordCategory][]types.KeywordMatch)
	var categoriesFound []types.KeywordCategory
	var all []types.KeywordMatch

	for _, cat := range catalog {
		var matches []types.KeywordMatch
		for _, re := range cat.patterns {
			for _, loc := range re.FindAllStringIndex(normalized, -1) {
				start, end := loc[0], loc[1]
				if !onTokenBoundary(normalized, start, end) {
					continue
				}
				ctx := contextWindow(normalized, start, end)
				conf := scoreConfidence(ctx, cat.category)
				if conf < minConfidence {
					continue
				}
				matches = append(matches, types.KeywordMatch{
					Keyword:    normalized[start:end],
					Category:   cat.category,
					Context:    ctx,
					Position:   start,
					Confidence: conf,
				})
			}
		}
		if len(matches) > 0 {
			byCategory[cat.category] = matches
			categoriesFound = append(categoriesFound, cat.category)
			all = append(all, matches...)
		}
	}

	ranked := Rank(all)
	unique := len(ranked)
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	if categoriesFound == nil {
		categoriesFound = []types.KeywordCategory{}
	}

	return types.KeywordSummary{
		Success:            true,
		KeywordsByCategory: byCategory,
		TopKeywords:        ranked,
		TotalKeywordsFound: len(all),
		UniqueKeywords:     unique,
		CategoriesFound:    categoriesFound,
		MinConfidence:      minConfidence,
		TextLength:         utf8.RuneCountInString(text),
	}
}

func failed(msg string, minConfidence float64) types.KeywordSummary {
	return types.KeywordSummary{
		Success:            false,
		Error:              msg,
		KeywordsByCategory: map[types.KeywordCategory][]types.KeywordMatch{},
		TopKeywords:        []types.RankedKeyword{},
		CategoriesFound:    []types.KeywordCategory{},
		MinConfidence:      minConfidence,
	}
}

// scoreConfidence applies the context bonuses to the base confidence, capped at 1.
func scoreConfidence(context string, category types.KeywordCategory) float64 {
	conf := baseConfidence
	if certificationCues.MatchString(context) {
		conf += certificationBonus
	}
	if experienceCues.MatchString(context) {
		conf += experienceBonus
	}
	if projectCues.MatchString(context) {
		conf += projectBonus
	}
	if category == types.CategoryCertifications && vendorCues.MatchString(context) {
		conf += vendorBonus
	}
	return min(conf, 1.0)
}

// Rank folds matches by lower-cased keyword and orders them by
// frequency*0.6 + confidence*0.4. Each entry keeps the spelling and category
// of its highest-confidence match; ties keep first-encounter order.
func Rank(matches []types.KeywordMatch) []types.RankedKeyword {
	index := make(map[string]int)
	var ranked []types.RankedKeyword

	for _, m := range matches {
		key := strings.ToLower(m.Keyword)
		i, seen := index[key]
		if !seen {
			index[key] = len(ranked)
			ranked = append(ranked, types.RankedKeyword{
				Keyword:    m.Keyword,
				Category:   m.Category,
				Frequency:  1,
				Confidence: m.Confidence,
			})
			continue
		}
		r := &ranked[i]
		r.Frequency++
		if m.Confidence > r.Confidence {
			r.Keyword = m.Keyword
			r.Category = m.Category
			r.Confidence = m.Confidence
		}
	}

	for i := range ranked {
		ranked[i].Score = float64(ranked[i].Frequency)*frequencyWeight + ranked[i].Confidence*confidenceWeight
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if ranked == nil {
		ranked = []types.RankedKeyword{}
	}
	return ranked
}

// onTokenBoundary rejects hits that sit inside a longer word, such as
// "Java" in "Javanese" or "SQL" in "MySQL".
func onTokenBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// contextWindow returns up to contextRadius bytes on each side of the match,
// widened to whole runes.
func contextWindow(s string, start, end int) string {
	from := max(0, start-contextRadius)
	for from > 0 && !utf8.RuneStart(s[from]) {
		from--
	}
	to := min(len(s), end+contextRadius)
	for to < len(s) && !utf8.RuneStart(s[to]) {
		to++
	}
	return strings.TrimSpace(s[from:to])
}
