package services

import (
	"context"
	"fmt"
	"sync"

	"collex-backend/internal/models"
)

// MaxPhotos is the fixed cap of photos allowed per item
const MaxPhotos = 5

// PhotoStore is the persistence contract the photo lifecycle needs
type PhotoStore interface {
	ListByItem(ctx context.Context, itemID int64) ([]models.Photo, error)
	CountByItem(ctx context.Context, itemID int64) (int, error)
	GetByID(ctx context.Context, itemID, photoID int64) (*models.Photo, error)
	InsertBatch(ctx context.Context, itemID int64, urls []string) error
	ClearPrimary(ctx context.Context, itemID int64) error
	MarkPrimary(ctx context.Context, itemID, photoID int64) error
	Delete(ctx context.Context, itemID, photoID int64) error
}

// ItemStore is the item-side slice the photo lifecycle needs
type ItemStore interface {
	GetOwned(ctx context.Context, itemID, userID int64) (*models.Item, error)
	SetCoverPhoto(ctx context.Context, itemID int64, url *string) error
}

// PhotoService maintains the photo invariants across uploads, primary
// changes and deletes: at most MaxPhotos per item, exactly one primary
// when the item has any photos, and the item's cover_photo_url mirroring
// the primary photo's URL.
type PhotoService struct {
	photoStore PhotoStore
	itemStore  ItemStore

	// itemLocks serializes the clear/mark/set-cover windows of concurrent
	// mutations on the same item. The stores offer no cross-entity
	// transaction, so this is the only thing keeping two simultaneous
	// primary changes from leaving a mismatched cover.
	itemLocks sync.Map
}

// NewPhotoService creates a new photo lifecycle service
func NewPhotoService(photoStore PhotoStore, itemStore ItemStore) *PhotoService {
	return &PhotoService{
		photoStore: photoStore,
		itemStore:  itemStore,
	}
}

func (s *PhotoService) lockItem(itemID int64) func() {
	v, _ := s.itemLocks.LoadOrStore(itemID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ListPhotos returns the photos of an item owned by the user, primary
// first, then by ascending id
func (s *PhotoService) ListPhotos(ctx context.Context, itemID, userID int64) ([]models.Photo, error) {
	if _, err := s.itemStore.GetOwned(ctx, itemID, userID); err != nil {
		return nil, err
	}
	return s.photoStore.ListByItem(ctx, itemID)
}

// AddPhotos attaches already-stored photo URLs to an item. The whole
// batch is rejected when it would push the item past MaxPhotos. When the
// item had no primary before the add, the first photo of the batch is
// elected primary; an existing primary is never disturbed.
func (s *PhotoService) AddPhotos(ctx context.Context, itemID, userID int64, urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("no photos to add: %w", models.ErrValidation)
	}

	if _, err := s.itemStore.GetOwned(ctx, itemID, userID); err != nil {
		return err
	}

	unlock := s.lockItem(itemID)
	defer unlock()

	count, err := s.photoStore.CountByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if count+len(urls) > MaxPhotos {
		return fmt.Errorf("max %d photos per item: %w", MaxPhotos, models.ErrCapacity)
	}

	if err := s.photoStore.InsertBatch(ctx, itemID, urls); err != nil {
		return err
	}

	photos, err := s.photoStore.ListByItem(ctx, itemID)
	if err != nil {
		return err
	}
	for _, p := range photos {
		if p.IsPrimary {
			return nil
		}
	}
	if len(photos) == 0 {
		return nil
	}

	// No primary means the item was empty before this batch. With no
	// primary the list is ordered by ascending id, so photos[0] is the
	// first photo of the batch.
	return s.electPrimary(ctx, itemID, photos[0].ID, photos[0].URL)
}

// SetPrimary promotes the given photo to primary and refreshes the
// item's cover URL. Returns the new cover URL.
func (s *PhotoService) SetPrimary(ctx context.Context, itemID, photoID, userID int64) (string, error) {
	if _, err := s.itemStore.GetOwned(ctx, itemID, userID); err != nil {
		return "", err
	}

	unlock := s.lockItem(itemID)
	defer unlock()

	photo, err := s.photoStore.GetByID(ctx, itemID, photoID)
	if err != nil {
		return "", err
	}

	if err := s.electPrimary(ctx, itemID, photo.ID, photo.URL); err != nil {
		return "", err
	}
	return photo.URL, nil
}

// DeletePhoto removes a photo. Deleting the primary re-elects the lowest
// remaining photo id as the new primary, or clears the cover URL when no
// photos remain.
func (s *PhotoService) DeletePhoto(ctx context.Context, itemID, photoID, userID int64) error {
	if _, err := s.itemStore.GetOwned(ctx, itemID, userID); err != nil {
		return err
	}

	unlock := s.lockItem(itemID)
	defer unlock()

	photo, err := s.photoStore.GetByID(ctx, itemID, photoID)
	if err != nil {
		return err
	}

	if err := s.photoStore.Delete(ctx, itemID, photoID); err != nil {
		return err
	}

	if !photo.IsPrimary {
		return nil
	}

	remaining, err := s.photoStore.ListByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return s.itemStore.SetCoverPhoto(ctx, itemID, nil)
	}

	// None of the remaining photos is primary, so the store ordering
	// puts the lowest id first.
	next := remaining[0]
	return s.electPrimary(ctx, itemID, next.ID, next.URL)
}

// electPrimary runs the clear/mark/set-cover sequence for one photo
func (s *PhotoService) electPrimary(ctx context.Context, itemID, photoID int64, url string) error {
	if err := s.photoStore.ClearPrimary(ctx, itemID); err != nil {
		return err
	}
	if err := s.photoStore.MarkPrimary(ctx, itemID, photoID); err != nil {
		return err
	}
	return s.itemStore.SetCoverPhoto(ctx, itemID, &url)
}
