package usecase

import (
	"regexp"
	"strings"

	"github.com/bourbonvault/backend/internal/domain"
)

// Compiled patterns for search query cleanup
var (
	// bottle sizes like "750ml", "1.75 L", "50 ml"
	bottleSizePattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(ml|l|liters?|litres?)\b`)

	// proof statements like "100 proof" or "100pf"
	proofPattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(proof|pf)\b`)

	apostrophePattern  = regexp.MustCompile(`['’]`)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s#-]+`)
	multiSpacePattern  = regexp.MustCompile(`\s+`)
)

// queryNoiseWords carry no signal when searching a bourbon catalog
var queryNoiseWords = map[string]bool{
	"bottle": true,
	"the":    true,
	"a":      true,
	"of":     true,
	"and":    true,
	"bbn":    true,
}

// NormalizeSearchText lowercases s, drops apostrophes so "maker's" and
// "makers" compare equal, and turns other punctuation into spaces.
func NormalizeSearchText(s string) string {
	s = strings.ToLower(s)
	s = apostrophePattern.ReplaceAllString(s, "")
	s = punctuationPattern.ReplaceAllString(s, " ")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// PreprocessQuery cleans a free-text catalog query: sizes, proof statements
// and noise words are removed. An all-noise query cleans to "".
func PreprocessQuery(query string) string {
	cleaned := strings.ToLower(query)
	cleaned = bottleSizePattern.ReplaceAllString(cleaned, " ")
	cleaned = proofPattern.ReplaceAllString(cleaned, " ")
	cleaned = NormalizeSearchText(cleaned)

	var kept []string
	for _, word := range strings.Fields(cleaned) {
		if !queryNoiseWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// MatchesQuery reports whether a cleaned query matches the bourbon's name,
// distillery or any flavor. Every query token must appear in at least one
// of those fields.
func MatchesQuery(b domain.Bourbon, cleaned string) bool {
	if cleaned == "" {
		return true
	}

	fields := make([]string, 0, len(b.FlavorProfile)+2)
	fields = append(fields, NormalizeSearchText(b.Name), NormalizeSearchText(b.Distillery))
	for _, f := range b.FlavorProfile {
		fields = append(fields, NormalizeSearchText(f))
	}

	for _, token := range strings.Fields(cleaned) {
		found := false
		for _, field := range fields {
			if strings.Contains(field, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
