package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/bourbonvault/backend/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository
type ProfileRepository struct {
	db *sql.DB
}

const profileColumns = `user_id, display_name, bio, location, favorite_style, website, twitter_handle,
	flavor_preferences, avatar_url, onboarding_completed, subscription_tier, created_at, updated_at`

func (r *ProfileRepository) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)

	var (
		p    domain.Profile
		tier string
	)
	err := row.Scan(&p.UserID, &p.DisplayName, &p.Bio, &p.Location, &p.FavoriteStyle, &p.Website,
		&p.TwitterHandle, pq.Array(&p.FlavorPreferences), &p.AvatarURL, &p.OnboardingCompleted,
		&tier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err, "profile "+userID)
	}
	p.SubscriptionTier = domain.SubscriptionTier(tier)
	p.FlavorPreferences = stringsOrEmpty(p.FlavorPreferences)
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			favorite_style = EXCLUDED.favorite_style,
			website = EXCLUDED.website,
			twitter_handle = EXCLUDED.twitter_handle,
			flavor_preferences = EXCLUDED.flavor_preferences,
			avatar_url = EXCLUDED.avatar_url,
			onboarding_completed = EXCLUDED.onboarding_completed,
			subscription_tier = EXCLUDED.subscription_tier,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.DisplayName, p.Bio, p.Location, p.FavoriteStyle, p.Website, p.TwitterHandle,
		pq.Array(stringsOrEmpty(p.FlavorPreferences)), p.AvatarURL, p.OnboardingCompleted,
		string(p.SubscriptionTier), p.CreatedAt, p.UpdatedAt)
	return translate(err, "profile "+p.UserID)
}
