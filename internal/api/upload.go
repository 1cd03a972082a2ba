package api

import (
	"fmt"
	"net/http"

	"messenger-backend/internal/middleware"
	"messenger-backend/internal/repository"
	"messenger-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadHandler struct {
	storage *storage.LocalStorage
	users   repository.UserRepository
	maxSize int64
	log     *zap.SugaredLogger
}

func NewUploadHandler(store *storage.LocalStorage, users repository.UserRepository, maxSize int64, log *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{
		storage: store,
		users:   users,
		maxSize: maxSize,
		log:     log,
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// UploadImage stores a profile picture and records its generated filename on
// the caller's user row.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No file provided"})
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": fmt.Sprintf("File exceeds %dMB limit", h.maxSize/(1024*1024))})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Only JPG, PNG and GIF images are allowed"})
		return
	}

	filename, err := h.storage.SaveUpload(file, header)
	if err != nil {
		h.log.Errorw("failed to save upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to save file"})
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.users.SetProfilePicture(c.Request.Context(), userID, filename); err != nil {
		_ = h.storage.Delete(filename)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Image uploaded.",
		"filename": filename,
	})
}
