package usecase

import "github.com/bourbonvault/backend/internal/domain"

// Observer receives service-level events for metrics
type Observer interface {
	RecommendationComputed(mode domain.RecommendationMode, cached bool, results int)
	MarkupReportBuilt(records int)
}

type noopObserver struct{}

func (noopObserver) RecommendationComputed(domain.RecommendationMode, bool, int) {}
func (noopObserver) MarkupReportBuilt(int)                                      {}
