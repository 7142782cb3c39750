package handlers

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sweatcrew/backend/internal/storage"
	"github.com/sweatcrew/backend/pkg/utils"
)

type UploadsHandler struct {
	Storage *storage.MinIOClient
}

func NewUploadsHandler(storageClient *storage.MinIOClient) *UploadsHandler {
	return &UploadsHandler{Storage: storageClient}
}

// presigned GETs outlive the upload response by a week, matching how long
// the frontend caches photo URLs.
const uploadURLExpiry = 7 * 24 * time.Hour

// Upload accepts a multipart form with one or more "files" parts, stores each
// object, and returns the presigned URLs in upload order.
func (h *UploadsHandler) Upload(c *fiber.Ctx) error {
	if h.Storage == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "storage not configured")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid multipart form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "no files uploaded")
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "failed reading uploaded file")
		}

		objectName := fmt.Sprintf("uploads/%d-%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename))
		contentType := fileHeader.Header.Get("Content-Type")

		err = h.Storage.Upload(c.Context(), objectName, file, fileHeader.Size, contentType)
		file.Close()
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed storing file")
		}

		url, err := h.Storage.PresignedGetURL(c.Context(), objectName, uploadURLExpiry)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed generating file url")
		}
		urls = append(urls, url)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"urls": urls})
}
