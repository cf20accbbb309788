package service

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"community-feed-api/internal/client"
	"community-feed-api/internal/dto"
	"community-feed-api/internal/response"
)

// MaxImageSize is the largest accepted cover or community image
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// validateImage checks type and size and returns the file extension to store under
func validateImage(upload *dto.FileUpload) (string, error) {
	contentType, _, _ := mime.ParseMediaType(upload.ContentType)
	defaultExt, ok := allowedImageTypes[contentType]
	if !ok {
		return "", response.NewAppError(response.ErrCodeValidation, "Image must be JPEG, PNG, GIF or WebP", upload.ContentType)
	}
	if upload.Size > MaxImageSize {
		return "", response.NewAppError(response.ErrCodeValidation, "Image exceeds the 5MB limit", "")
	}

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext, nil
	}
	return defaultExt, nil
}

// uploadImage validates and stores upload and returns the stored key
func uploadImage(ctx context.Context, storage client.MediaStorage, kind, ownerID string, upload *dto.FileUpload) (string, error) {
	if storage == nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Media storage is not configured", "")
	}
	ext, err := validateImage(upload)
	if err != nil {
		return "", err
	}
	key, err := storage.GenerateFileKey(kind, ownerID, ext)
	if err != nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to generate file key", err.Error())
	}
	if _, err := storage.UploadFile(ctx, key, upload.Reader, upload.ContentType); err != nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to upload image", err.Error())
	}
	return key, nil
}

// discardUpload removes a stored object that never got attached to a row
func discardUpload(ctx context.Context, storage client.MediaStorage, key string, logger *zap.Logger) {
	if key == "" || storage == nil {
		return
	}
	if err := storage.DeleteFile(ctx, key); err != nil {
		logger.Warn("Failed to remove unattached upload", zap.String("key", key), zap.Error(err))
	}
}

func mediaURL(storage client.MediaStorage, key string) string {
	if key == "" {
		return ""
	}
	if storage == nil {
		return key
	}
	return storage.GetFileURL(key)
}
