package handlers

import (
	"encoding/json"
	"net/http"

	"collex-backend/internal/middleware"
	"collex-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CollectionHandler handles collection and category HTTP requests
type CollectionHandler struct {
	collectionService *services.CollectionService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// collectionRequest is the create/update payload for collections
type collectionRequest struct {
	Name        string  `json:"name"`
	CategoryID  int64   `json:"category_id"`
	Description *string `json:"description"`
}

// ListCategories handles GET /api/categories
func (h *CollectionHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.collectionService.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// ListCollections handles GET /api/collections
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	collections, err := h.collectionService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list collections")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}
	respondJSON(w, http.StatusOK, collections)
}

// GetCollection handles GET /api/collections/{id}
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	collectionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	collection, err := h.collectionService.Get(ctx, collectionID, userID)
	if err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("Failed to get collection")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}
	respondJSON(w, http.StatusOK, collection)
}

// CreateCollection handles POST /api/collections
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req collectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.collectionService.Create(ctx, userID, req.CategoryID, req.Name, req.Description)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create collection")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "created",
		"id":      id,
	})
}

// UpdateCollection handles PUT /api/collections/{id}
func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	collectionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req collectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.collectionService.Update(ctx, collectionID, userID, req.CategoryID, req.Name); err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("Failed to update collection")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// DeleteCollection handles DELETE /api/collections/{id}
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	collectionID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.collectionService.Delete(ctx, collectionID, userID); err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("Failed to delete collection")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
