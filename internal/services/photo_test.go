package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"collex-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID int64 = 1

// fakeStores is an in-memory implementation of PhotoStore and ItemStore
// mirroring the SQL repositories' behavior, including the
// primary-first/ascending-id list order.
type fakeStores struct {
	items  map[int64]*models.Item
	owners map[int64]int64
	photos []models.Photo
	nextID int64
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		items:  make(map[int64]*models.Item),
		owners: make(map[int64]int64),
		nextID: 1,
	}
}

func (f *fakeStores) addItem(id, userID int64) {
	f.items[id] = &models.Item{ID: id, CollectionID: 1}
	f.owners[id] = userID
}

// addPhoto seeds a photo row directly, bypassing the lifecycle
func (f *fakeStores) addPhoto(itemID int64, url string, primary bool) int64 {
	id := f.nextID
	f.nextID++
	f.photos = append(f.photos, models.Photo{ID: id, ItemID: itemID, URL: url, IsPrimary: primary})
	if primary {
		u := url
		f.items[itemID].CoverPhotoURL = &u
	}
	return id
}

func (f *fakeStores) ListByItem(ctx context.Context, itemID int64) ([]models.Photo, error) {
	out := []models.Photo{}
	for _, p := range f.photos {
		if p.ItemID == itemID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStores) CountByItem(ctx context.Context, itemID int64) (int, error) {
	count := 0
	for _, p := range f.photos {
		if p.ItemID == itemID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStores) GetByID(ctx context.Context, itemID, photoID int64) (*models.Photo, error) {
	for _, p := range f.photos {
		if p.ID == photoID && p.ItemID == itemID {
			photo := p
			return &photo, nil
		}
	}
	return nil, fmt.Errorf("photo not found: %w", models.ErrNotFound)
}

func (f *fakeStores) InsertBatch(ctx context.Context, itemID int64, urls []string) error {
	for _, url := range urls {
		id := f.nextID
		f.nextID++
		f.photos = append(f.photos, models.Photo{ID: id, ItemID: itemID, URL: url})
	}
	return nil
}

func (f *fakeStores) ClearPrimary(ctx context.Context, itemID int64) error {
	for i := range f.photos {
		if f.photos[i].ItemID == itemID {
			f.photos[i].IsPrimary = false
		}
	}
	return nil
}

func (f *fakeStores) MarkPrimary(ctx context.Context, itemID, photoID int64) error {
	for i := range f.photos {
		if f.photos[i].ID == photoID && f.photos[i].ItemID == itemID {
			f.photos[i].IsPrimary = true
			return nil
		}
	}
	return fmt.Errorf("photo not found: %w", models.ErrNotFound)
}

func (f *fakeStores) Delete(ctx context.Context, itemID, photoID int64) error {
	for i, p := range f.photos {
		if p.ID == photoID && p.ItemID == itemID {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("photo not found: %w", models.ErrNotFound)
}

func (f *fakeStores) GetOwned(ctx context.Context, itemID, userID int64) (*models.Item, error) {
	item, ok := f.items[itemID]
	if !ok || f.owners[itemID] != userID {
		return nil, fmt.Errorf("item not found: %w", models.ErrNotFound)
	}
	return item, nil
}

func (f *fakeStores) SetCoverPhoto(ctx context.Context, itemID int64, url *string) error {
	item, ok := f.items[itemID]
	if !ok {
		return fmt.Errorf("item not found: %w", models.ErrNotFound)
	}
	item.CoverPhotoURL = url
	return nil
}

// assertInvariants checks the photo invariants for one item: at most
// MaxPhotos rows, exactly one primary when any photo exists, and the
// cover URL mirroring the primary (nil when the item is empty).
func assertInvariants(t *testing.T, f *fakeStores, itemID int64) {
	t.Helper()

	photos, err := f.ListByItem(context.Background(), itemID)
	require.NoError(t, err)
	require.LessOrEqual(t, len(photos), MaxPhotos)

	item := f.items[itemID]
	if len(photos) == 0 {
		assert.Nil(t, item.CoverPhotoURL)
		return
	}

	primaries := []models.Photo{}
	for _, p := range photos {
		if p.IsPrimary {
			primaries = append(primaries, p)
		}
	}
	require.Len(t, primaries, 1)
	require.NotNil(t, item.CoverPhotoURL)
	assert.Equal(t, primaries[0].URL, *item.CoverPhotoURL)
}

func TestAddPhotos_FirstBatchElectsFirstPhoto(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	svc := NewPhotoService(f, f)
	ctx := context.Background()

	err := svc.AddPhotos(ctx, 10, testUserID, []string{"/uploads/items/a.jpg", "/uploads/items/b.jpg"})
	require.NoError(t, err)

	photos, err := svc.ListPhotos(ctx, 10, testUserID)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	// The first photo of the batch (lowest id) is primary and listed first.
	assert.True(t, photos[0].IsPrimary)
	assert.Equal(t, "/uploads/items/a.jpg", photos[0].URL)
	assert.False(t, photos[1].IsPrimary)

	assertInvariants(t, f, 10)
}

func TestAddPhotos_ExistingPrimaryUntouched(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	primaryID := f.addPhoto(10, "/uploads/items/cover.jpg", true)
	f.addPhoto(10, "/uploads/items/b.jpg", false)
	f.addPhoto(10, "/uploads/items/c.jpg", false)
	f.addPhoto(10, "/uploads/items/d.jpg", false)
	svc := NewPhotoService(f, f)
	ctx := context.Background()

	err := svc.AddPhotos(ctx, 10, testUserID, []string{"/uploads/items/e.jpg"})
	require.NoError(t, err)

	photos, err := svc.ListPhotos(ctx, 10, testUserID)
	require.NoError(t, err)
	require.Len(t, photos, 5)

	// The newest upload must not steal the primary flag.
	assert.Equal(t, primaryID, photos[0].ID)
	assert.True(t, photos[0].IsPrimary)
	assert.Equal(t, "/uploads/items/cover.jpg", *f.items[10].CoverPhotoURL)

	assertInvariants(t, f, 10)
}

func TestAddPhotos_CapacityRejectsWholeBatch(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	f.addPhoto(10, "/uploads/items/b.jpg", false)
	f.addPhoto(10, "/uploads/items/c.jpg", false)
	f.addPhoto(10, "/uploads/items/d.jpg", false)
	svc := NewPhotoService(f, f)
	ctx := context.Background()

	// 4 existing + 2 candidates exceeds the cap: nothing may be added.
	err := svc.AddPhotos(ctx, 10, testUserID, []string{"/uploads/items/e.jpg", "/uploads/items/f.jpg"})
	require.ErrorIs(t, err, models.ErrCapacity)

	count, err := f.CountByItem(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assertInvariants(t, f, 10)
}

func TestAddPhotos_FullItemRejectsSingle(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	for i := 0; i < 4; i++ {
		f.addPhoto(10, fmt.Sprintf("/uploads/items/x%d.jpg", i), false)
	}
	svc := NewPhotoService(f, f)

	err := svc.AddPhotos(context.Background(), 10, testUserID, []string{"/uploads/items/one-too-many.jpg"})
	require.ErrorIs(t, err, models.ErrCapacity)

	count, _ := f.CountByItem(context.Background(), 10)
	assert.Equal(t, 5, count)
	assertInvariants(t, f, 10)
}

func TestAddPhotos_FillsToCapExactly(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	f.addPhoto(10, "/uploads/items/b.jpg", false)
	f.addPhoto(10, "/uploads/items/c.jpg", false)
	f.addPhoto(10, "/uploads/items/d.jpg", false)
	svc := NewPhotoService(f, f)

	err := svc.AddPhotos(context.Background(), 10, testUserID, []string{"/uploads/items/e.jpg"})
	require.NoError(t, err)

	count, _ := f.CountByItem(context.Background(), 10)
	assert.Equal(t, 5, count)
	assertInvariants(t, f, 10)
}

func TestAddPhotos_EmptyBatch(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	svc := NewPhotoService(f, f)

	err := svc.AddPhotos(context.Background(), 10, testUserID, nil)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestAddPhotos_UnknownItem(t *testing.T) {
	f := newFakeStores()
	svc := NewPhotoService(f, f)

	err := svc.AddPhotos(context.Background(), 99, testUserID, []string{"/uploads/items/a.jpg"})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetPrimary_PromotesAndUpdatesCover(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	target := f.addPhoto(10, "/uploads/items/b.jpg", false)
	svc := NewPhotoService(f, f)

	coverURL, err := svc.SetPrimary(context.Background(), 10, target, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/items/b.jpg", coverURL)

	photos, _ := f.ListByItem(context.Background(), 10)
	assert.Equal(t, target, photos[0].ID)
	assert.True(t, photos[0].IsPrimary)
	assertInvariants(t, f, 10)
}

func TestSetPrimary_PhotoOfAnotherItem(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addItem(20, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	foreign := f.addPhoto(20, "/uploads/items/other.jpg", true)
	svc := NewPhotoService(f, f)

	// A photo id under a different item must read as not found and leave
	// both items untouched.
	_, err := svc.SetPrimary(context.Background(), 10, foreign, testUserID)
	require.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, "/uploads/items/a.jpg", *f.items[10].CoverPhotoURL)
	assert.Equal(t, "/uploads/items/other.jpg", *f.items[20].CoverPhotoURL)
	assertInvariants(t, f, 10)
	assertInvariants(t, f, 20)
}

func TestDeletePhoto_PrimaryReelectsLowestID(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.nextID = 3
	primary := f.addPhoto(10, "/uploads/items/three.jpg", true) // id=3
	f.nextID = 5
	f.addPhoto(10, "/uploads/items/five.jpg", false) // id=5
	svc := NewPhotoService(f, f)

	err := svc.DeletePhoto(context.Background(), 10, primary, testUserID)
	require.NoError(t, err)

	photos, _ := f.ListByItem(context.Background(), 10)
	require.Len(t, photos, 1)
	assert.Equal(t, int64(5), photos[0].ID)
	assert.True(t, photos[0].IsPrimary)
	assert.Equal(t, "/uploads/items/five.jpg", *f.items[10].CoverPhotoURL)
	assertInvariants(t, f, 10)
}

func TestDeletePhoto_PrimaryAmongSeveral(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", false)
	primary := f.addPhoto(10, "/uploads/items/b.jpg", true)
	f.addPhoto(10, "/uploads/items/c.jpg", false)
	svc := NewPhotoService(f, f)

	err := svc.DeletePhoto(context.Background(), 10, primary, testUserID)
	require.NoError(t, err)

	// Lowest remaining id wins the re-election.
	photos, _ := f.ListByItem(context.Background(), 10)
	require.Len(t, photos, 2)
	assert.True(t, photos[0].IsPrimary)
	assert.Equal(t, "/uploads/items/a.jpg", photos[0].URL)
	assertInvariants(t, f, 10)
}

func TestDeletePhoto_NonPrimaryLeavesCover(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	other := f.addPhoto(10, "/uploads/items/b.jpg", false)
	svc := NewPhotoService(f, f)

	err := svc.DeletePhoto(context.Background(), 10, other, testUserID)
	require.NoError(t, err)

	assert.Equal(t, "/uploads/items/a.jpg", *f.items[10].CoverPhotoURL)
	assertInvariants(t, f, 10)
}

func TestDeletePhoto_LastPhotoClearsCover(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	only := f.addPhoto(10, "/uploads/items/a.jpg", true)
	svc := NewPhotoService(f, f)

	err := svc.DeletePhoto(context.Background(), 10, only, testUserID)
	require.NoError(t, err)

	photos, _ := f.ListByItem(context.Background(), 10)
	assert.Empty(t, photos)
	assert.Nil(t, f.items[10].CoverPhotoURL)
	assertInvariants(t, f, 10)
}

func TestDeletePhoto_UnknownPhoto(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", true)
	svc := NewPhotoService(f, f)

	err := svc.DeletePhoto(context.Background(), 10, 999, testUserID)
	require.ErrorIs(t, err, models.ErrNotFound)
	assertInvariants(t, f, 10)
}

func TestListPhotos_OrderAndScope(t *testing.T) {
	f := newFakeStores()
	f.addItem(10, testUserID)
	f.addPhoto(10, "/uploads/items/a.jpg", false)
	f.addPhoto(10, "/uploads/items/b.jpg", true)
	f.addPhoto(10, "/uploads/items/c.jpg", false)
	svc := NewPhotoService(f, f)
	ctx := context.Background()

	photos, err := svc.ListPhotos(ctx, 10, testUserID)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, "/uploads/items/b.jpg", photos[0].URL)
	assert.Equal(t, "/uploads/items/a.jpg", photos[1].URL)
	assert.Equal(t, "/uploads/items/c.jpg", photos[2].URL)

	// A different user's scope never sees the item.
	_, err = svc.ListPhotos(ctx, 10, testUserID+1)
	require.ErrorIs(t, err, models.ErrNotFound)
}
