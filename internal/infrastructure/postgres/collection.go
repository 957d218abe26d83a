package postgres

import (
	"context"
	"database/sql"

	"github.com/bourbonvault/backend/internal/domain"
)

// CollectionRepository implements domain.CollectionRepository
type CollectionRepository struct {
	db *sql.DB
}

const collectionColumns = `id, user_id, bourbon_id, status, purchase_price, acquired_date, notes, created_at, updated_at`

func scanCollectionItem(row rowScanner) (*domain.CollectionItem, error) {
	var (
		item     domain.CollectionItem
		status   string
		price    sql.NullFloat64
		acquired sql.NullTime
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.BourbonID, &status, &price, &acquired,
		&item.Notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Status = domain.CollectionStatus(status)
	item.PurchasePrice = floatPtr(price)
	item.AcquiredDate = timePtr(acquired)
	return &item, nil
}

func (r *CollectionRepository) Create(ctx context.Context, item *domain.CollectionItem) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO collection_items (`+collectionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.UserID, item.BourbonID, string(item.Status), nullFloat(item.PurchasePrice),
		nullTime(item.AcquiredDate), item.Notes, item.CreatedAt, item.UpdatedAt)
	return translate(err, "collection item "+item.BourbonID)
}

func (r *CollectionRepository) GetByID(ctx context.Context, userID, id string) (*domain.CollectionItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collection_items WHERE id = $1 AND user_id = $2`, id, userID)
	item, err := scanCollectionItem(row)
	if err != nil {
		return nil, translate(err, "collection item "+id)
	}
	return item, nil
}

// ListByUser returns items newest first
func (r *CollectionRepository) ListByUser(ctx context.Context, userID string) ([]domain.CollectionItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collection_items WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, translate(err, "list collection")
	}
	defer rows.Close()

	items := []domain.CollectionItem{}
	for rows.Next() {
		item, err := scanCollectionItem(rows)
		if err != nil {
			return nil, translate(err, "scan collection item")
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list collection")
	}
	return items, nil
}

func (r *CollectionRepository) Update(ctx context.Context, item *domain.CollectionItem) error {
	res, err := r.db.ExecContext(ctx, `UPDATE collection_items SET
			status = $3, purchase_price = $4, acquired_date = $5, notes = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`,
		item.ID, item.UserID, string(item.Status), nullFloat(item.PurchasePrice),
		nullTime(item.AcquiredDate), item.Notes, item.UpdatedAt)
	if err != nil {
		return translate(err, "collection item "+item.ID)
	}
	return expectOne(res, "collection item "+item.ID)
}

func (r *CollectionRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collection_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translate(err, "collection item "+id)
	}
	return expectOne(res, "collection item "+id)
}
