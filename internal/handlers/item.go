package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"collex-backend/internal/middleware"
	"collex-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ItemHandler handles item HTTP requests
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// createItemRequest is the payload for adding an item to a collection
type createItemRequest struct {
	Title        string `json:"title"`
	AcquiredDate string `json:"acquired_date"` // YYYY-MM-DD, optional
}

// updateItemRequest is the payload for editing an item
type updateItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// ListItems handles GET /api/collections/{id}/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	collectionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	items, err := h.itemService.ListByCollection(ctx, collectionID, userID)
	if err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("Failed to list items")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// GetItem handles GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := h.itemService.Get(ctx, itemID, userID)
	if err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to get item")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /api/collections/{id}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	collectionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var acquired *time.Time
	if req.AcquiredDate != "" {
		t, err := time.Parse("2006-01-02", req.AcquiredDate)
		if err != nil {
			respondError(w, "invalid acquired_date", http.StatusBadRequest)
			return
		}
		acquired = &t
	}

	id, err := h.itemService.Create(ctx, collectionID, userID, req.Title, acquired)
	if err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("Failed to create item")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// UpdateItem handles PUT /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.itemService.Update(ctx, itemID, userID, req.Title, req.Description); err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to update item")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.itemService.Delete(ctx, itemID, userID); err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to delete item")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
