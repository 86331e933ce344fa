package repository

import (
	"context"
	"fmt"

	"collex-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CollectionRepository handles database operations for collections
type CollectionRepository struct {
	db *pgxpool.Pool
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// ListByUser retrieves all collections of a user, newest first
func (r *CollectionRepository) ListByUser(ctx context.Context, userID int64) ([]models.Collection, error) {
	query := `
		SELECT c.id, c.user_id, c.category_id, cat.label, c.name, c.description, c.created_at
		FROM collections c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		var col models.Collection
		err := rows.Scan(
			&col.ID, &col.UserID, &col.CategoryID, &col.CategoryLabel,
			&col.Name, &col.Description, &col.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return collections, nil
}

// GetByID retrieves a collection with its category label, scoped to the user
func (r *CollectionRepository) GetByID(ctx context.Context, collectionID, userID int64) (*models.Collection, error) {
	query := `
		SELECT c.id, c.user_id, c.category_id, cat.label, c.name, c.description, c.created_at
		FROM collections c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.id = $1 AND c.user_id = $2
	`
	var col models.Collection
	err := r.db.QueryRow(ctx, query, collectionID, userID).Scan(
		&col.ID, &col.UserID, &col.CategoryID, &col.CategoryLabel,
		&col.Name, &col.Description, &col.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("collection not found: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &col, nil
}

// Create inserts a new collection and returns its id
func (r *CollectionRepository) Create(ctx context.Context, userID, categoryID int64, name string, description *string) (int64, error) {
	query := `
		INSERT INTO collections (user_id, category_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, userID, categoryID, name, description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create collection: %w", err)
	}
	return id, nil
}

// Update overwrites name and category of a collection owned by the user
func (r *CollectionRepository) Update(ctx context.Context, collectionID, userID, categoryID int64, name string) error {
	query := `
		UPDATE collections
		SET name = $1, category_id = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := r.db.Exec(ctx, query, name, categoryID, collectionID, userID)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("collection not found: %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a collection owned by the user. Items and their photos
// go with it via the foreign key cascades.
func (r *CollectionRepository) Delete(ctx context.Context, collectionID, userID int64) error {
	query := `DELETE FROM collections WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, collectionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("collection not found: %w", models.ErrNotFound)
	}
	return nil
}
