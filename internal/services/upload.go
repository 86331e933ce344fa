package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"collex-backend/internal/models"
	"collex-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxUploadSize is the per-file size ceiling for photo uploads (5 MiB)
const MaxUploadSize = 5 * 1024 * 1024

// MaxUploadFiles is the per-call ceiling on uploaded files. It matches
// MaxPhotos but is enforced at the boundary independently of how many
// photos the item already has.
const MaxUploadFiles = 5

// UploadFile is one raw uploaded entry handed over by the HTTP boundary
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadService validates raw uploads and persists their bytes through a
// blob store before any photo row exists.
type UploadService struct {
	blobStore storage.BlobStore
}

// NewUploadService creates a new upload intake service
func NewUploadService(blobStore storage.BlobStore) *UploadService {
	return &UploadService{blobStore: blobStore}
}

// Store validates and persists the uploaded files, returning one public
// URL per file in input order. When any file fails, every file already
// saved in this call is removed before the error propagates, so no blob
// exists without a photo row to point at it.
func (s *UploadService) Store(ctx context.Context, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded: %w", models.ErrValidation)
	}
	if len(files) > MaxUploadFiles {
		return nil, fmt.Errorf("max %d files per upload: %w", MaxUploadFiles, models.ErrValidation)
	}

	urls := make([]string, 0, len(files))
	saved := make([]string, 0, len(files))

	rollback := func() {
		for _, name := range saved {
			if err := s.blobStore.Remove(ctx, name); err != nil {
				log.Warn().Err(err).Str("file", name).Msg("Failed to remove file during upload rollback")
			}
		}
	}

	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			rollback()
			return nil, fmt.Errorf("only image uploads are accepted: %w", models.ErrValidation)
		}
		if f.Size > MaxUploadSize {
			rollback()
			return nil, fmt.Errorf("file exceeds %d bytes: %w", MaxUploadSize, models.ErrValidation)
		}

		name := storedName(f.Name)
		url, err := s.blobStore.Save(ctx, name, io.LimitReader(f.Data, MaxUploadSize))
		if err != nil {
			rollback()
			return nil, fmt.Errorf("failed to store upload: %w", err)
		}

		saved = append(saved, name)
		urls = append(urls, url)
	}

	return urls, nil
}

// Discard removes previously stored uploads by their returned URLs, used
// when the photo lifecycle rejects a batch whose bytes were already
// persisted, so no blob outlives its failed photo rows.
func (s *UploadService) Discard(ctx context.Context, urls []string) {
	for _, u := range urls {
		name := path.Base(u)
		if err := s.blobStore.Remove(ctx, name); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Failed to remove rejected upload")
		}
	}
}

// storedName builds a collision-resistant file name keeping the original
// extension
func storedName(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
