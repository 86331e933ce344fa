package repository

import (
	"context"
	"fmt"
	"strings"

	"collex-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepository handles database operations for item photos
type PhotoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// ListByItem retrieves all photos of an item, primary first, then by
// ascending id. An unknown item yields an empty slice.
func (r *PhotoRepository) ListByItem(ctx context.Context, itemID int64) ([]models.Photo, error) {
	query := `
		SELECT id, item_id, url, is_primary, created_at
		FROM item_photos
		WHERE item_id = $1
		ORDER BY is_primary DESC, id ASC
	`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID, &photo.ItemID, &photo.URL, &photo.IsPrimary, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return photos, nil
}

// CountByItem returns the number of photos stored for an item
func (r *PhotoRepository) CountByItem(ctx context.Context, itemID int64) (int, error) {
	query := `SELECT COUNT(*) FROM item_photos WHERE item_id = $1`
	var count int
	if err := r.db.QueryRow(ctx, query, itemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}

// GetByID retrieves a photo scoped to an item. A photo id that belongs to
// a different item reports ErrNotFound.
func (r *PhotoRepository) GetByID(ctx context.Context, itemID, photoID int64) (*models.Photo, error) {
	query := `
		SELECT id, item_id, url, is_primary, created_at
		FROM item_photos
		WHERE id = $1 AND item_id = $2
	`
	var photo models.Photo
	err := r.db.QueryRow(ctx, query, photoID, itemID).Scan(
		&photo.ID, &photo.ItemID, &photo.URL, &photo.IsPrimary, &photo.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("photo not found: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &photo, nil
}

// InsertBatch inserts one non-primary photo row per URL in a single
// multi-row statement, so the batch commits all-or-nothing.
func (r *PhotoRepository) InsertBatch(ctx context.Context, itemID int64, urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("empty photo batch: %w", models.ErrValidation)
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO item_photos (item_id, url, is_primary) VALUES ")
	args := make([]interface{}, 0, len(urls)*2)
	for i, url := range urls {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("($%d, $%d, FALSE)", i*2+1, i*2+2))
		args = append(args, itemID, url)
	}

	if _, err := r.db.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert photos: %w", err)
	}
	return nil
}

// ClearPrimary unsets the primary flag on every photo of an item
func (r *PhotoRepository) ClearPrimary(ctx context.Context, itemID int64) error {
	query := `UPDATE item_photos SET is_primary = FALSE WHERE item_id = $1`
	if _, err := r.db.Exec(ctx, query, itemID); err != nil {
		return fmt.Errorf("failed to clear primary flag: %w", err)
	}
	return nil
}

// MarkPrimary sets the primary flag on exactly the given photo. Callers
// must clear the item's previous primary first.
func (r *PhotoRepository) MarkPrimary(ctx context.Context, itemID, photoID int64) error {
	query := `UPDATE item_photos SET is_primary = TRUE WHERE id = $1 AND item_id = $2`
	result, err := r.db.Exec(ctx, query, photoID, itemID)
	if err != nil {
		return fmt.Errorf("failed to mark photo primary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("photo not found: %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a photo row scoped to an item
func (r *PhotoRepository) Delete(ctx context.Context, itemID, photoID int64) error {
	query := `DELETE FROM item_photos WHERE id = $1 AND item_id = $2`
	result, err := r.db.Exec(ctx, query, photoID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("photo not found: %w", models.ErrNotFound)
	}
	return nil
}
