package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"fruitapp/internal/storage"
)

const (
	maxFileSize   = 10 << 20 // 10 MB per file
	maxImageCount = 5
	maxVideoCount = 3
)

// UploadMedia handles POST /api/upload/media (admin, multipart). Field
// "images" takes image/* files, field "videos" takes video/*; anything
// else is rejected. Files are written sequentially with no cross-file
// atomicity: a failure midway leaves the earlier blobs persisted and
// fails the whole request.
func (h *Handlers) UploadMedia(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	for field := range form.File {
		if field != "images" && field != "videos" {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid field name %q", field))
			return
		}
	}

	images := form.File["images"]
	videos := form.File["videos"]

	if len(images) > maxImageCount {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Too many files: at most %d images per upload", maxImageCount))
		return
	}
	if len(videos) > maxVideoCount {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Too many files: at most %d videos per upload", maxVideoCount))
		return
	}

	if err := checkFiles(images, "image/"); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkFiles(videos, "video/"); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	uploaded := map[string][]storage.MediaAsset{
		"images": {},
		"videos": {},
	}

	for field, files := range map[string][]*multipart.FileHeader{"images": images, "videos": videos} {
		for _, fh := range files {
			asset, err := h.saveOne(field, fh)
			if err != nil {
				serverError(c, err)
				return
			}
			uploaded[field] = append(uploaded[field], asset)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Files uploaded successfully",
		"files":   uploaded,
	})
}

// DeleteMedia handles DELETE /api/upload/media/:field/:filename (admin).
func (h *Handlers) DeleteMedia(c *gin.Context) {
	field := c.Param("field")
	if field != "images" && field != "videos" {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid field name %q", field))
		return
	}

	err := h.Media.Delete(field, c.Param("filename"))
	if errors.Is(err, os.ErrNotExist) {
		fail(c, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

// checkFiles enforces the per-file size limit and the mime prefix for one
// multipart field before anything is written to storage.
func checkFiles(files []*multipart.FileHeader, mimePrefix string) error {
	kind := strings.TrimSuffix(mimePrefix, "/")
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return fmt.Errorf("File %q exceeds the %dMB size limit", fh.Filename, maxFileSize>>20)
		}
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), mimePrefix) {
			return fmt.Errorf("Only %s files are allowed for the %ss field", kind, kind)
		}
	}
	return nil
}

func (h *Handlers) saveOne(field string, fh *multipart.FileHeader) (storage.MediaAsset, error) {
	src, err := fh.Open()
	if err != nil {
		return storage.MediaAsset{}, err
	}
	defer src.Close()

	return h.Media.Save(field, fh.Filename, fh.Header.Get("Content-Type"), src)
}
