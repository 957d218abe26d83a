package usecase

import (
	"sort"
	"strings"

	"github.com/bourbonvault/backend/internal/domain"
)

// Recommendation tuning
const (
	DefaultTopFlavors   = 8   // flavors kept when deriving a profile from tasting history
	DefaultMaxResults   = 12  // preference and history feeds
	DefaultTopRatedMax  = 8   // top-rated feed
	DefaultMinTopRating = 4.0 // ratings at or above this count as "top rated"
	maxScore            = 100.0
)

// NormalizePreferences lowercases and trims each flavor, drops blanks and
// collapses case-insensitive duplicates. Order of first appearance is kept.
func NormalizePreferences(preferences []string) []string {
	seen := make(map[string]bool, len(preferences))
	out := make([]string, 0, len(preferences))
	for _, p := range preferences {
		key := strings.ToLower(strings.TrimSpace(p))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// flavorsOverlap reports whether either lowercase descriptor contains the other
// ("vanilla" vs "french vanilla").
func flavorsOverlap(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// FlavorScore computes the percentage of normalized preferences that match at
// least one flavor of the bourbon. normalized must come from NormalizePreferences.
func FlavorScore(bourbon domain.Bourbon, normalized []string) float64 {
	if len(normalized) == 0 {
		return 0
	}

	profile := make([]string, 0, len(bourbon.FlavorProfile))
	for _, f := range bourbon.FlavorProfile {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			profile = append(profile, f)
		}
	}

	matches := 0
	for _, pref := range normalized {
		for _, flavor := range profile {
			if flavorsOverlap(flavor, pref) {
				matches++
				break
			}
		}
	}

	return float64(matches) / float64(len(normalized)) * maxScore
}

// ScoreByPreferences ranks catalog entries by overlap with the preference set.
// Entries scoring zero are dropped. Equal scores keep catalog order.
// An empty preference set yields an empty result.
func ScoreByPreferences(catalog []domain.Bourbon, preferences []string) []domain.ScoredItem {
	return rank(catalog, NormalizePreferences(preferences), nil)
}

// ScoreByHistory derives the top flavors from historical tags and ranks the
// catalog against them, skipping entries listed in excludeIDs.
func ScoreByHistory(catalog []domain.Bourbon, historicalTags []string, excludeIDs map[string]struct{}) []domain.ScoredItem {
	return scoreByProfile(catalog, DeriveFlavorProfile(historicalTags, DefaultTopFlavors), excludeIDs)
}

func scoreByProfile(catalog []domain.Bourbon, profile []string, excludeIDs map[string]struct{}) []domain.ScoredItem {
	return rank(catalog, NormalizePreferences(profile), excludeIDs)
}

// ScoreByTopRated combines the flavor profiles of the given (highly rated)
// catalog entries into one preference set and ranks the remaining entries.
func ScoreByTopRated(catalog []domain.Bourbon, ratedIDs map[string]struct{}) []domain.ScoredItem {
	if len(ratedIDs) == 0 {
		return []domain.ScoredItem{}
	}
	var combined []string
	for _, b := range catalog {
		if _, ok := ratedIDs[b.ID]; ok {
			combined = append(combined, b.FlavorProfile...)
		}
	}
	return rank(catalog, NormalizePreferences(combined), ratedIDs)
}

// DeriveFlavorProfile counts descriptor frequency across historical tags and
// returns the k most frequent, ties broken by first appearance. Counting is
// case-insensitive; the first spelling seen is returned.
func DeriveFlavorProfile(tags []string, k int) []string {
	if k <= 0 {
		k = DefaultTopFlavors
	}

	type flavorCount struct {
		name  string
		count int
	}

	index := make(map[string]int)
	var counts []flavorCount
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		key := strings.ToLower(trimmed)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			counts[i].count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, flavorCount{name: trimmed, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > k {
		counts = counts[:k]
	}
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.name
	}
	return out
}

// rank scores every non-excluded entry, keeps positive scores and sorts
// descending with a stable sort so ties stay in catalog order.
func rank(catalog []domain.Bourbon, normalized []string, excludeIDs map[string]struct{}) []domain.ScoredItem {
	results := []domain.ScoredItem{}
	if len(normalized) == 0 {
		return results
	}

	for _, bourbon := range catalog {
		if _, skip := excludeIDs[bourbon.ID]; skip {
			continue
		}
		score := FlavorScore(bourbon, normalized)
		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredItem{Bourbon: bourbon, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Limit truncates a ranked list without copying when it is already short enough.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
