package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bourbonvault/backend/internal/domain"
)

// ProfileService reads and edits user profiles
type ProfileService struct {
	repo domain.ProfileRepository
	now  func() time.Time
}

// NewProfileService creates the profile service
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo, now: time.Now}
}

// Get returns the user's profile, creating an empty free-tier profile on first read
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	now := s.now().UTC()
	profile = &domain.Profile{
		UserID:            userID,
		FlavorPreferences: []string{},
		SubscriptionTier:  domain.TierFree,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// Update applies the non-nil fields of update
func (s *ProfileService) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	if err := validateInput(update); err != nil {
		return nil, err
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	setString(&profile.DisplayName, update.DisplayName)
	setString(&profile.Bio, update.Bio)
	setString(&profile.Location, update.Location)
	setString(&profile.FavoriteStyle, update.FavoriteStyle)
	setString(&profile.Website, update.Website)
	setString(&profile.TwitterHandle, update.TwitterHandle)
	if update.FlavorPreferences != nil {
		profile.FlavorPreferences = cleanFlavors(update.FlavorPreferences)
	}
	if update.OnboardingCompleted != nil {
		profile.OnboardingCompleted = *update.OnboardingCompleted
	}
	profile.UpdatedAt = s.now().UTC()

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
