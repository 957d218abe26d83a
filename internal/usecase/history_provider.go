package usecase

import (
	"context"
	"fmt"

	"github.com/bourbonvault/backend/internal/domain"
)

// NoteHistory derives tasting history from a user's tasting notes
type NoteHistory struct {
	notes domain.TastingNoteRepository
}

// NewNoteHistory wraps a tasting note repository as a domain.HistoryProvider
func NewNoteHistory(notes domain.TastingNoteRepository) *NoteHistory {
	return &NoteHistory{notes: notes}
}

// GetHistory reads the user's notes once and returns both their flavor tags
// and the bourbons they cover
func (h *NoteHistory) GetHistory(ctx context.Context, userID string) (domain.TastingHistory, error) {
	notes, err := h.list(ctx, userID)
	if err != nil {
		return domain.TastingHistory{}, err
	}
	return domain.TastingHistory{
		FlavorTags: flavorTags(notes),
		ItemIDs:    itemIDs(notes),
	}, nil
}

// GetHistoricalFlavorTags returns every discernible flavor across the user's notes, in note order
func (h *NoteHistory) GetHistoricalFlavorTags(ctx context.Context, userID string) ([]string, error) {
	notes, err := h.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	return flavorTags(notes), nil
}

// GetHistoricalItemIDs returns the ids of every bourbon the user has a note for
func (h *NoteHistory) GetHistoricalItemIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	notes, err := h.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	return itemIDs(notes), nil
}

// GetRatedItemIDs returns the ids of bourbons the user rated at or above minRating
func (h *NoteHistory) GetRatedItemIDs(ctx context.Context, userID string, minRating float64) (map[string]struct{}, error) {
	notes, err := h.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{})
	for _, n := range notes {
		if n.Rating != nil && *n.Rating >= minRating {
			ids[n.BourbonID] = struct{}{}
		}
	}
	return ids, nil
}

func (h *NoteHistory) list(ctx context.Context, userID string) ([]domain.TastingNote, error) {
	notes, err := h.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasting history: %w", err)
	}
	return notes, nil
}

func flavorTags(notes []domain.TastingNote) []string {
	var tags []string
	for _, n := range notes {
		tags = append(tags, n.DiscernibleFlavors...)
	}
	return tags
}

func itemIDs(notes []domain.TastingNote) map[string]struct{} {
	ids := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		ids[n.BourbonID] = struct{}{}
	}
	return ids
}
