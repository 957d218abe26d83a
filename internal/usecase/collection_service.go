package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
)

// CollectionService tracks bottles a user owns, has tried, or wants
type CollectionService struct {
	repo    domain.CollectionRepository
	catalog *CatalogService
	log     logger.Logger
	now     func() time.Time
}

// NewCollectionService creates the collection service
func NewCollectionService(repo domain.CollectionRepository, catalog *CatalogService, log logger.Logger) *CollectionService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CollectionService{repo: repo, catalog: catalog, log: log, now: time.Now}
}

// List returns the user's collection, optionally narrowed to one status
func (s *CollectionService) List(ctx context.Context, userID string, status domain.CollectionStatus) ([]domain.CollectionItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if status != "" && !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}

	out := []domain.CollectionItem{}
	for _, item := range items {
		if status == "" || item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

// Add puts a bourbon in the collection. One entry per bourbon per user.
func (s *CollectionService) Add(ctx context.Context, userID string, input domain.CollectionInput) (*domain.CollectionItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}
	for _, item := range existing {
		if item.BourbonID == input.BourbonID {
			return nil, fmt.Errorf("%w: %q is already in the collection", domain.ErrAlreadyExists, input.BourbonID)
		}
	}

	now := s.now().UTC()
	item := &domain.CollectionItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCollectionInput(item, input)

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info("collection item added", map[string]interface{}{
		"user_id":    userID,
		"bourbon_id": item.BourbonID,
		"status":     string(item.Status),
	})
	return item, nil
}

// Update changes status, price, date or notes of an item. The bourbon cannot change.
func (s *CollectionService) Update(ctx context.Context, userID, id string, input domain.CollectionInput) (*domain.CollectionItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.BourbonID == "" {
		input.BourbonID = item.BourbonID
	}
	if input.BourbonID != item.BourbonID {
		return nil, fmt.Errorf("%w: bourbonId cannot change", domain.ErrValidation)
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	applyCollectionInput(item, input)
	item.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes an item
func (s *CollectionService) Remove(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

// Stats counts the user's items per status
func (s *CollectionService) Stats(ctx context.Context, userID string) (domain.CollectionStats, error) {
	items, err := s.List(ctx, userID, "")
	if err != nil {
		return domain.CollectionStats{}, err
	}
	var stats domain.CollectionStats
	for _, item := range items {
		switch item.Status {
		case domain.StatusOwn:
			stats.Own++
		case domain.StatusTried:
			stats.Tried++
		case domain.StatusWant:
			stats.Want++
		}
	}
	stats.Total = len(items)
	return stats, nil
}

func (s *CollectionService) validate(ctx context.Context, input domain.CollectionInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	if _, err := s.catalog.Get(ctx, input.BourbonID); err != nil {
		return fmt.Errorf("%w: bourbonId: %v", domain.ErrValidation, err)
	}
	return nil
}

func applyCollectionInput(item *domain.CollectionItem, input domain.CollectionInput) {
	item.BourbonID = input.BourbonID
	item.Status = input.Status
	item.PurchasePrice = input.PurchasePrice
	item.AcquiredDate = input.AcquiredDate
	item.Notes = input.Notes
}

func validStatus(status domain.CollectionStatus) bool {
	switch status {
	case domain.StatusOwn, domain.StatusTried, domain.StatusWant:
		return true
	}
	return false
}
