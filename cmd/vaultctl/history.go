package main

import (
	"context"

	"github.com/bourbonvault/backend/internal/domain"
)

// emptyHistory stands in for a journal when ranking offline
type emptyHistory struct{}

func (emptyHistory) GetHistory(context.Context, string) (domain.TastingHistory, error) {
	return domain.TastingHistory{ItemIDs: map[string]struct{}{}}, nil
}

func (emptyHistory) GetHistoricalFlavorTags(context.Context, string) ([]string, error) {
	return nil, nil
}

func (emptyHistory) GetHistoricalItemIDs(context.Context, string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (emptyHistory) GetRatedItemIDs(context.Context, string, float64) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}
