package handlers

import (
	"net/http"

	"collex-backend/internal/middleware"
	"collex-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// photosFormField is the multipart field name carrying uploaded files
const photosFormField = "photos"

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 8 << 20

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService  *services.PhotoService
	uploadService *services.UploadService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService, uploadService *services.UploadService) *PhotoHandler {
	return &PhotoHandler{
		photoService:  photoService,
		uploadService: uploadService,
	}
}

// ListPhotos handles GET /api/items/{id}/photos
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	photos, err := h.photoService.ListPhotos(ctx, itemID, userID)
	if err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to list photos")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// AddPhotos handles POST /api/items/{id}/photos
func (h *PhotoHandler) AddPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File[photosFormField]
	files := make([]services.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			respondError(w, "failed to read uploaded file", http.StatusBadRequest)
			return
		}
		defer f.Close()

		files = append(files, services.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}

	urls, err := h.uploadService.Store(ctx, files)
	if err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to store uploaded photos")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	if err := h.photoService.AddPhotos(ctx, itemID, userID, urls); err != nil {
		// The blobs were stored before the lifecycle rejected the batch;
		// remove them so no file exists without a photo row.
		h.uploadService.Discard(ctx, urls)

		log.Error().Err(err).Int64("item_id", itemID).Msg("Failed to add photos")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	log.Info().Int64("item_id", itemID).Int("count", len(urls)).Msg("Photos added")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "uploaded",
		"urls":    urls,
	})
}

// SetPrimary handles PUT /api/items/{itemID}/photos/{photoID}/primary
func (h *PhotoHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}
	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	coverURL, err := h.photoService.SetPrimary(ctx, itemID, photoID, userID)
	if err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Int64("photo_id", photoID).Msg("Failed to set primary photo")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "primary updated",
		"cover_photo_url": coverURL,
	})
}

// DeletePhoto handles DELETE /api/items/{itemID}/photos/{photoID}
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}
	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.photoService.DeletePhoto(ctx, itemID, photoID, userID); err != nil {
		log.Error().Err(err).Int64("item_id", itemID).Int64("photo_id", photoID).Msg("Failed to delete photo")
		respondError(w, err.Error(), statusFromErr(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
