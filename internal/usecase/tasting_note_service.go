package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

// TastingNoteService manages a user's tasting diary
type TastingNoteService struct {
	repo    domain.TastingNoteRepository
	catalog *CatalogService
	log     logger.Logger
	now     func() time.Time
}

// NewTastingNoteService creates the tasting note service
func NewTastingNoteService(repo domain.TastingNoteRepository, catalog *CatalogService, log logger.Logger) *TastingNoteService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &TastingNoteService{repo: repo, catalog: catalog, log: log, now: time.Now}
}

// List returns the user's notes, most recently tasted first
func (s *TastingNoteService) List(ctx context.Context, userID string) ([]domain.TastingNote, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	notes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasting notes: %w", err)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].TastedAt.After(notes[j].TastedAt)
	})
	if notes == nil {
		notes = []domain.TastingNote{}
	}
	return notes, nil
}

// Get returns one of the user's notes
func (s *TastingNoteService) Get(ctx context.Context, userID, id string) (*domain.TastingNote, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

// Create validates and stores a new note. The bourbon name is filled from the catalog.
func (s *TastingNoteService) Create(ctx context.Context, userID string, input domain.TastingNoteInput) (*domain.TastingNote, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	bourbon, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	note := &domain.TastingNote{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyNoteInput(note, input, bourbon, now)

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create tasting note: %w", err)
	}

	s.log.Info("tasting note created", map[string]interface{}{
		"user_id":    userID,
		"note_id":    note.ID,
		"bourbon_id": note.BourbonID,
	})
	return note, nil
}

// Update replaces the writable fields of an existing note
func (s *TastingNoteService) Update(ctx context.Context, userID, id string, input domain.TastingNoteInput) (*domain.TastingNote, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	note, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	bourbon, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tastedAt := note.TastedAt
	applyNoteInput(note, input, bourbon, tastedAt)
	note.UpdatedAt = now

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update tasting note: %w", err)
	}
	return note, nil
}

// Delete removes a note
func (s *TastingNoteService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("tasting note deleted", map[string]interface{}{"user_id": userID, "note_id": id})
	return nil
}

func (s *TastingNoteService) validate(ctx context.Context, input domain.TastingNoteInput) (*domain.Bourbon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	bourbon, err := s.catalog.Get(ctx, input.BourbonID)
	if err != nil {
		return nil, fmt.Errorf("%w: bourbonId: %v", domain.ErrValidation, err)
	}
	return bourbon, nil
}

// applyNoteInput copies input onto note. defaultTastedAt is used when the
// input carries no tasting time.
func applyNoteInput(note *domain.TastingNote, input domain.TastingNoteInput, bourbon *domain.Bourbon, defaultTastedAt time.Time) {
	note.BourbonID = bourbon.ID
	note.BourbonName = bourbon.Name
	note.VisibleColor = input.VisibleColor
	note.Bouquet = input.Bouquet
	note.Taste = input.Taste
	note.Finish = input.Finish
	note.OverallThoughts = input.OverallThoughts
	note.DiscernibleFlavors = cleanFlavors(input.DiscernibleFlavors)
	note.Rating = input.Rating
	note.Location = input.Location
	note.Glassware = input.Glassware
	note.WaterAdded = input.WaterAdded
	note.IceAdded = input.IceAdded
	note.PhotoURL = input.PhotoURL

	note.TastedAt = defaultTastedAt
	if input.TastedAt != nil {
		note.TastedAt = input.TastedAt.UTC()
	}
}

// cleanFlavors trims entries and drops blanks and case-insensitive
// duplicates, keeping the user's spelling.
func cleanFlavors(flavors []string) []string {
	seen := make(map[string]bool, len(flavors))
	out := make([]string, 0, len(flavors))
	for _, f := range flavors {
		f = strings.TrimSpace(f)
		key := strings.ToLower(f)
		if f == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
