package repository

import (
	"context"
	"fmt"
	"time"

	"collex-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemRepository handles database operations for items
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// GetOwned retrieves an item scoped to the owning user via its collection.
// Every photo operation uses this as its existence/ownership gate.
func (r *ItemRepository) GetOwned(ctx context.Context, itemID, userID int64) (*models.Item, error) {
	query := `
		SELECT i.id, i.collection_id, i.title, i.description, i.cover_photo_url, i.acquired_date, i.created_at
		FROM items i
		JOIN collections c ON c.id = i.collection_id
		WHERE i.id = $1 AND c.user_id = $2
	`
	var item models.Item
	err := r.db.QueryRow(ctx, query, itemID, userID).Scan(
		&item.ID, &item.CollectionID, &item.Title, &item.Description,
		&item.CoverPhotoURL, &item.AcquiredDate, &item.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("item not found: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// ListByCollection retrieves the items of a collection, newest first,
// scoped to the owning user
func (r *ItemRepository) ListByCollection(ctx context.Context, collectionID, userID int64) ([]models.Item, error) {
	query := `
		SELECT i.id, i.collection_id, i.title, i.description, i.cover_photo_url, i.acquired_date, i.created_at
		FROM items i
		JOIN collections c ON c.id = i.collection_id
		WHERE i.collection_id = $1 AND c.user_id = $2
		ORDER BY i.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, collectionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		err := rows.Scan(
			&item.ID, &item.CollectionID, &item.Title, &item.Description,
			&item.CoverPhotoURL, &item.AcquiredDate, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Create inserts an item into a collection owned by the user and returns
// the new id. Creating into someone else's collection inserts nothing.
func (r *ItemRepository) Create(ctx context.Context, collectionID, userID int64, title string, acquiredDate *time.Time) (int64, error) {
	query := `
		INSERT INTO items (collection_id, title, acquired_date)
		SELECT $1, $2, $3::date
		FROM collections
		WHERE id = $1 AND user_id = $4
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, collectionID, title, acquiredDate, userID).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("collection not found: %w", models.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to create item: %w", err)
	}
	return id, nil
}

// Update overwrites title and description of an item owned by the user.
// The cover photo field is never touched here.
func (r *ItemRepository) Update(ctx context.Context, itemID, userID int64, title string, description *string) error {
	query := `
		UPDATE items i
		SET title = $1, description = $2
		FROM collections c
		WHERE c.id = i.collection_id AND i.id = $3 AND c.user_id = $4
	`
	result, err := r.db.Exec(ctx, query, title, description, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item not found: %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes an item owned by the user. Photo rows go with it via the
// foreign key cascade.
func (r *ItemRepository) Delete(ctx context.Context, itemID, userID int64) error {
	query := `
		DELETE FROM items i
		USING collections c
		WHERE c.id = i.collection_id AND i.id = $1 AND c.user_id = $2
	`
	result, err := r.db.Exec(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item not found: %w", models.ErrNotFound)
	}
	return nil
}

// SetCoverPhoto unconditionally overwrites the denormalized cover photo
// URL. The caller always passes the freshly-known primary URL, or nil
// when the item has no photos left.
func (r *ItemRepository) SetCoverPhoto(ctx context.Context, itemID int64, url *string) error {
	query := `UPDATE items SET cover_photo_url = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, url, itemID); err != nil {
		return fmt.Errorf("failed to set cover photo: %w", err)
	}
	return nil
}
