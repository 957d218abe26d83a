package usecase

import (
	"sort"

	"github.com/bourbonvault/backend/internal/domain"
)

// Markup tier upper bounds (inclusive), in percent over MSRP.
const (
	fairValueMaxPercent     = 25.0
	slightPremiumMaxPercent = 100.0
	highPremiumMaxPercent   = 300.0
)

// valueViewSize is how many entries the best/worst value views show
const valueViewSize = 5

// ClassifyMarkup maps a percentage markup to its tier. Each bracket is
// closed at its upper edge.
func ClassifyMarkup(percent float64) domain.MarkupTier {
	switch {
	case percent <= fairValueMaxPercent:
		return domain.TierFairValue
	case percent <= slightPremiumMaxPercent:
		return domain.TierSlightPremium
	case percent <= highPremiumMaxPercent:
		return domain.TierHighPremium
	default:
		return domain.TierExtremePremium
	}
}

// ComputeMarkups builds a markup record for every entry whose MSRP and
// secondary price both parse with a non-zero MSRP, sorted by percentage
// markup descending (ties keep catalog order).
func ComputeMarkups(catalog []domain.Bourbon) []domain.MarkupRecord {
	records := []domain.MarkupRecord{}

	for _, bourbon := range catalog {
		msrp, ok := ParsePrice(bourbon.MSRP)
		if !ok || msrp == 0 {
			continue
		}
		secondary, ok := ParsePrice(bourbon.SecondaryPrice)
		if !ok {
			continue
		}

		markup := secondary - msrp
		percent := float64(markup) / float64(msrp) * 100

		records = append(records, domain.MarkupRecord{
			Bourbon:       bourbon,
			MSRP:          msrp,
			Secondary:     secondary,
			Markup:        markup,
			MarkupPercent: percent,
			Tier:          ClassifyMarkup(percent),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MarkupPercent > records[j].MarkupPercent
	})
	return records
}

// SummarizeMarkups derives the value views and aggregates from a list
// already sorted by ComputeMarkups. With no records the average and
// highest markup are nil rather than NaN.
func SummarizeMarkups(records []domain.MarkupRecord) domain.MarkupSummary {
	summary := domain.MarkupSummary{
		Analyzed:   len(records),
		BestValue:  []domain.MarkupRecord{},
		WorstValue: []domain.MarkupRecord{},
	}
	if len(records) == 0 {
		return summary
	}

	n := min(valueViewSize, len(records))

	summary.WorstValue = append(summary.WorstValue, records[:n]...)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		summary.BestValue = append(summary.BestValue, records[i])
	}

	total := 0.0
	for _, r := range records {
		total += r.MarkupPercent
	}
	avg := total / float64(len(records))
	highest := records[0].MarkupPercent
	summary.AverageMarkup = &avg
	summary.HighestMarkup = &highest

	return summary
}
