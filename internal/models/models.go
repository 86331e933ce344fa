package models

import "time"

// Category is a fixed reference label collections are grouped under.
type Category struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Collection represents a categorized group of items owned by a user.
type Collection struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	CategoryID    int64     `json:"category_id"`
	CategoryLabel string    `json:"category_label,omitempty"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Item represents a catalogued object inside a collection.
// CoverPhotoURL is a denormalized copy of the primary photo's URL and is
// null exactly when the item has no photos.
type Item struct {
	ID            int64      `json:"id"`
	CollectionID  int64      `json:"collection_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	CoverPhotoURL *string    `json:"cover_photo_url"`
	AcquiredDate  *time.Time `json:"acquired_date"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Photo represents one photo attached to an item. At most one photo per
// item has IsPrimary set.
type Photo struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	URL       string    `json:"url"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}
