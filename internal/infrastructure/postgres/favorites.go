package postgres

import (
	"context"
	"database/sql"

	"github.com/bourbonvault/backend/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository
type FavoriteRepository struct {
	db *sql.DB
}

func (r *FavoriteRepository) Add(ctx context.Context, f *domain.Favorite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, bourbon_id, created_at) VALUES ($1, $2, $3, $4)`,
		f.ID, f.UserID, f.BourbonID, f.CreatedAt)
	return translate(err, "favorite "+f.BourbonID)
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, bourbonID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND bourbon_id = $2`, userID, bourbonID)
	if err != nil {
		return translate(err, "favorite "+bourbonID)
	}
	return expectOne(res, "favorite "+bourbonID)
}

// ListByUser returns favorites newest first
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, bourbon_id, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC, bourbon_id`,
		userID)
	if err != nil {
		return nil, translate(err, "list favorites")
	}
	defer rows.Close()

	favs := []domain.Favorite{}
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.BourbonID, &f.CreatedAt); err != nil {
			return nil, translate(err, "scan favorite")
		}
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list favorites")
	}
	return favs, nil
}
