package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"collex-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeItemRepo records catalog calls; ownership is keyed by item id
type fakeItemRepo struct {
	fakeStores
	created []string
	updated map[int64]string
	deleted []int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		fakeStores: *newFakeStores(),
		updated:    make(map[int64]string),
	}
}

func (f *fakeItemRepo) ListByCollection(ctx context.Context, collectionID, userID int64) ([]models.Item, error) {
	items := []models.Item{}
	for id, item := range f.items {
		if item.CollectionID == collectionID && f.owners[id] == userID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (f *fakeItemRepo) Create(ctx context.Context, collectionID, userID int64, title string, acquiredDate *time.Time) (int64, error) {
	f.created = append(f.created, title)
	return int64(len(f.created)), nil
}

func (f *fakeItemRepo) Update(ctx context.Context, itemID, userID int64, title string, description *string) error {
	if _, ok := f.items[itemID]; !ok || f.owners[itemID] != userID {
		return fmt.Errorf("item not found: %w", models.ErrNotFound)
	}
	f.updated[itemID] = title
	return nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, itemID, userID int64) error {
	if _, ok := f.items[itemID]; !ok || f.owners[itemID] != userID {
		return fmt.Errorf("item not found: %w", models.ErrNotFound)
	}
	f.deleted = append(f.deleted, itemID)
	return nil
}

func TestItemCreate_RequiresTitle(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo)

	_, err := svc.Create(context.Background(), 1, testUserID, "   ", nil)
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, repo.created)
}

func TestItemCreate_TrimsTitle(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo)

	id, err := svc.Create(context.Background(), 1, testUserID, "  First Edition  ", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "First Edition", repo.created[0])
}

func TestItemUpdate_RequiresTitle(t *testing.T) {
	repo := newFakeItemRepo()
	repo.addItem(10, testUserID)
	svc := NewItemService(repo)

	err := svc.Update(context.Background(), 10, testUserID, "", nil)
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, repo.updated)
}

func TestItemUpdate_ScopedToOwner(t *testing.T) {
	repo := newFakeItemRepo()
	repo.addItem(10, testUserID)
	svc := NewItemService(repo)

	err := svc.Update(context.Background(), 10, testUserID+1, "New Title", nil)
	require.ErrorIs(t, err, models.ErrNotFound)

	err = svc.Update(context.Background(), 10, testUserID, "New Title", nil)
	require.NoError(t, err)
	assert.Equal(t, "New Title", repo.updated[10])
}

func TestItemDelete_ScopedToOwner(t *testing.T) {
	repo := newFakeItemRepo()
	repo.addItem(10, testUserID)
	svc := NewItemService(repo)

	err := svc.Delete(context.Background(), 10, testUserID+1)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), 10, testUserID))
	assert.Equal(t, []int64{10}, repo.deleted)
}
