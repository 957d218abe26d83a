package domain

// RecommendationMode names the source of the preference set used for scoring
type RecommendationMode string

const (
	ModePreferences RecommendationMode = "preferences"
	ModeHistory     RecommendationMode = "history"
	ModeTopRated    RecommendationMode = "top-rated"
	ModeProfile     RecommendationMode = "profile"
)

// ScoredItem pairs a catalog entry with its flavor match score (0-100, unrounded)
type ScoredItem struct {
	Bourbon Bourbon `json:"bourbon"`
	Score   float64 `json:"score"`
}

// Recommendations is the response for a recommendation feed
type Recommendations struct {
	Mode        RecommendationMode `json:"mode"`
	Preferences []string           `json:"preferences"`
	Items       []ScoredItem       `json:"items"`
}

// TastingHistory is what the history feed needs from a journal
type TastingHistory struct {
	FlavorTags []string
	ItemIDs    map[string]struct{}
}

// PreferenceRequest carries a user-chosen flavor set
type PreferenceRequest struct {
	Flavors []string `json:"flavors"`
	Limit   int      `json:"limit,omitempty"`
}
