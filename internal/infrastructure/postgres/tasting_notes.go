package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/bourbonvault/backend/internal/domain"
)

// TastingNoteRepository implements domain.TastingNoteRepository
type TastingNoteRepository struct {
	db *sql.DB
}

const noteColumns = `id, user_id, bourbon_id, bourbon_name, visible_color, bouquet, taste, finish,
	overall_thoughts, discernible_flavors, rating, location, glassware, water_added, ice_added,
	photo_url, tasted_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*domain.TastingNote, error) {
	var (
		n      domain.TastingNote
		rating sql.NullFloat64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.BourbonID, &n.BourbonName, &n.VisibleColor, &n.Bouquet,
		&n.Taste, &n.Finish, &n.OverallThoughts, pq.Array(&n.DiscernibleFlavors), &rating,
		&n.Location, &n.Glassware, &n.WaterAdded, &n.IceAdded, &n.PhotoURL,
		&n.TastedAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.Rating = floatPtr(rating)
	n.DiscernibleFlavors = stringsOrEmpty(n.DiscernibleFlavors)
	return &n, nil
}

func (r *TastingNoteRepository) Create(ctx context.Context, n *domain.TastingNote) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO tasting_notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		n.ID, n.UserID, n.BourbonID, n.BourbonName, n.VisibleColor, n.Bouquet, n.Taste, n.Finish,
		n.OverallThoughts, pq.Array(stringsOrEmpty(n.DiscernibleFlavors)), nullFloat(n.Rating),
		n.Location, n.Glassware, n.WaterAdded, n.IceAdded, n.PhotoURL,
		n.TastedAt, n.CreatedAt, n.UpdatedAt)
	return translate(err, "tasting note "+n.ID)
}

func (r *TastingNoteRepository) GetByID(ctx context.Context, userID, id string) (*domain.TastingNote, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM tasting_notes WHERE id = $1 AND user_id = $2`, id, userID)
	n, err := scanNote(row)
	if err != nil {
		return nil, translate(err, "tasting note "+id)
	}
	return n, nil
}

// ListByUser returns notes newest tasted first
func (r *TastingNoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.TastingNote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM tasting_notes WHERE user_id = $1 ORDER BY tasted_at DESC, created_at DESC`, userID)
	if err != nil {
		return nil, translate(err, "list tasting notes")
	}
	defer rows.Close()

	notes := []domain.TastingNote{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, translate(err, "scan tasting note")
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list tasting notes")
	}
	return notes, nil
}

func (r *TastingNoteRepository) Update(ctx context.Context, n *domain.TastingNote) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasting_notes SET
			bourbon_id = $3, bourbon_name = $4, visible_color = $5, bouquet = $6, taste = $7,
			finish = $8, overall_thoughts = $9, discernible_flavors = $10, rating = $11,
			location = $12, glassware = $13, water_added = $14, ice_added = $15, photo_url = $16,
			tasted_at = $17, updated_at = $18
		WHERE id = $1 AND user_id = $2`,
		n.ID, n.UserID, n.BourbonID, n.BourbonName, n.VisibleColor, n.Bouquet, n.Taste, n.Finish,
		n.OverallThoughts, pq.Array(stringsOrEmpty(n.DiscernibleFlavors)), nullFloat(n.Rating),
		n.Location, n.Glassware, n.WaterAdded, n.IceAdded, n.PhotoURL, n.TastedAt, n.UpdatedAt)
	if err != nil {
		return translate(err, "tasting note "+n.ID)
	}
	return expectOne(res, "tasting note "+n.ID)
}

func (r *TastingNoteRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasting_notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translate(err, "tasting note "+id)
	}
	return expectOne(res, "tasting note "+id)
}
