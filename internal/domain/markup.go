package domain

// MarkupTier classifies how far the secondary price sits above MSRP
type MarkupTier string

const (
	TierFairValue      MarkupTier = "Fair Value"
	TierSlightPremium  MarkupTier = "Slight Premium"
	TierHighPremium    MarkupTier = "High Premium"
	TierExtremePremium MarkupTier = "Extreme Premium"
)

// MarkupRecord is the derived price divergence for one catalog entry.
// Only built when both prices parse and MSRP is non-zero.
type MarkupRecord struct {
	Bourbon       Bourbon    `json:"bourbon"`
	MSRP          int        `json:"msrp"`
	Secondary     int        `json:"secondary"`
	Markup        int        `json:"markup"`
	MarkupPercent float64    `json:"markupPercent"`
	Tier          MarkupTier `json:"tier"`
}

// MarkupSummary aggregates a ranked markup list.
// AverageMarkup and HighestMarkup are nil when no record was analyzed.
type MarkupSummary struct {
	Analyzed      int            `json:"analyzed"`
	AverageMarkup *float64       `json:"averageMarkup"`
	HighestMarkup *float64       `json:"highestMarkup"`
	BestValue     []MarkupRecord `json:"bestValue"`
	WorstValue    []MarkupRecord `json:"worstValue"`
}

// MarkupReport is the full value-calculator payload
type MarkupReport struct {
	Records []MarkupRecord `json:"records"`
	Summary MarkupSummary  `json:"summary"`
}
