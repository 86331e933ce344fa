package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"collex-backend/internal/models"
)

// ItemRepository is the full item persistence contract for the catalog
// service. ItemStore is its photo-facing slice.
type ItemRepository interface {
	ItemStore
	ListByCollection(ctx context.Context, collectionID, userID int64) ([]models.Item, error)
	Create(ctx context.Context, collectionID, userID int64, title string, acquiredDate *time.Time) (int64, error)
	Update(ctx context.Context, itemID, userID int64, title string, description *string) error
	Delete(ctx context.Context, itemID, userID int64) error
}

// ItemService handles item catalog operations
type ItemService struct {
	itemRepo ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ListByCollection returns the items of a collection owned by the user
func (s *ItemService) ListByCollection(ctx context.Context, collectionID, userID int64) ([]models.Item, error) {
	return s.itemRepo.ListByCollection(ctx, collectionID, userID)
}

// Get returns a single item owned by the user
func (s *ItemService) Get(ctx context.Context, itemID, userID int64) (*models.Item, error) {
	return s.itemRepo.GetOwned(ctx, itemID, userID)
}

// Create adds a new item to a collection owned by the user
func (s *ItemService) Create(ctx context.Context, collectionID, userID int64, title string, acquiredDate *time.Time) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("title is required: %w", models.ErrValidation)
	}
	return s.itemRepo.Create(ctx, collectionID, userID, title, acquiredDate)
}

// Update overwrites title and description of an item owned by the user.
// The cover photo URL is owned by the photo lifecycle and stays untouched.
func (s *ItemService) Update(ctx context.Context, itemID, userID int64, title string, description *string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required: %w", models.ErrValidation)
	}
	return s.itemRepo.Update(ctx, itemID, userID, title, description)
}

// Delete removes an item owned by the user together with its photos
func (s *ItemService) Delete(ctx context.Context, itemID, userID int64) error {
	return s.itemRepo.Delete(ctx, itemID, userID)
}
