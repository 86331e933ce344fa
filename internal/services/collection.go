package services

import (
	"context"
	"fmt"
	"strings"

	"collex-backend/internal/models"
)

// CollectionStore is the persistence contract for collections
type CollectionStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Collection, error)
	GetByID(ctx context.Context, collectionID, userID int64) (*models.Collection, error)
	Create(ctx context.Context, userID, categoryID int64, name string, description *string) (int64, error)
	Update(ctx context.Context, collectionID, userID, categoryID int64, name string) error
	Delete(ctx context.Context, collectionID, userID int64) error
}

// CategoryStore is the persistence contract for the category reference list
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

// CollectionService handles collection and category operations
type CollectionService struct {
	collectionRepo CollectionStore
	categoryRepo   CategoryStore
}

// NewCollectionService creates a new collection service
func NewCollectionService(collectionRepo CollectionStore, categoryRepo CategoryStore) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		categoryRepo:   categoryRepo,
	}
}

// List returns the user's collections, newest first
func (s *CollectionService) List(ctx context.Context, userID int64) ([]models.Collection, error) {
	return s.collectionRepo.ListByUser(ctx, userID)
}

// Get returns a single collection owned by the user
func (s *CollectionService) Get(ctx context.Context, collectionID, userID int64) (*models.Collection, error) {
	return s.collectionRepo.GetByID(ctx, collectionID, userID)
}

// Create adds a new collection for the user
func (s *CollectionService) Create(ctx context.Context, userID, categoryID int64, name string, description *string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if categoryID <= 0 {
		return 0, fmt.Errorf("category_id is required: %w", models.ErrValidation)
	}
	return s.collectionRepo.Create(ctx, userID, categoryID, name, description)
}

// Update overwrites name and category of a collection owned by the user
func (s *CollectionService) Update(ctx context.Context, collectionID, userID, categoryID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if categoryID <= 0 {
		return fmt.Errorf("category_id is required: %w", models.ErrValidation)
	}
	return s.collectionRepo.Update(ctx, collectionID, userID, categoryID, name)
}

// Delete removes a collection owned by the user together with its items
// and their photos
func (s *CollectionService) Delete(ctx context.Context, collectionID, userID int64) error {
	return s.collectionRepo.Delete(ctx, collectionID, userID)
}

// ListCategories returns the fixed category reference list
func (s *CollectionService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}
