package http

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadPhotos = 100

var linkClient = &http.Client{Timeout: 30 * time.Second}

// uploadPhotos stores multipart "photos" files and returns their opaque
// stored paths.
func (h *Handler) uploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "multipart form with photos is required")
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		writeError(c, http.StatusBadRequest, "invalid_request", "no photos provided")
		return
	}
	if len(files) > maxUploadPhotos {
		writeError(c, http.StatusBadRequest, "invalid_request", "too many photos")
		return
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid_request", "unreadable photo")
			return
		}

		opts := h.saveOpts
		opts.ContentType = file.Header.Get("Content-Type")
		stored, err := h.storage.SavePhoto(c.Request.Context(), photoName(file.Filename), src, opts)
		src.Close()
		if err != nil {
			h.logger.WithError(err).Error("store photo")
			writeError(c, http.StatusInternalServerError, "internal_error", "upload failed")
			return
		}
		paths = append(paths, stored)
	}

	c.JSON(http.StatusOK, paths)
}

type uploadByLinkRequest struct {
	Link string `json:"link" binding:"required"`
}

// uploadByLink fetches a remote image and stores it like a direct upload.
func (h *Handler) uploadByLink(c *gin.Context) {
	var req uploadByLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "link is required")
		return
	}
	if !strings.HasPrefix(req.Link, "http://") && !strings.HasPrefix(req.Link, "https://") {
		writeError(c, http.StatusBadRequest, "invalid_request", "link must be an http(s) URL")
		return
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, req.Link, nil)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "invalid link")
		return
	}

	resp, err := linkClient.Do(httpReq)
	if err != nil {
		writeError(c, http.StatusBadGateway, "fetch_failed", "could not fetch the link")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		writeError(c, http.StatusBadGateway, "fetch_failed", "could not fetch the link")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	opts := h.saveOpts
	opts.ContentType = contentType

	stored, err := h.storage.SavePhoto(c.Request.Context(), photoNameForType(contentType), resp.Body, opts)
	if err != nil {
		h.logger.WithError(err).Error("store linked photo")
		writeError(c, http.StatusInternalServerError, "internal_error", "upload failed")
		return
	}

	c.JSON(http.StatusOK, stored)
}

// photoURL resolves a stored photo path to a fetchable URL. Local paths come
// back unchanged; S3 paths are presigned for a short window.
func (h *Handler) photoURL(c *gin.Context) {
	stored := c.Query("path")
	if stored == "" {
		writeError(c, http.StatusBadRequest, "invalid_request", "path is required")
		return
	}

	url, err := h.storage.PhotoURL(c.Request.Context(), stored, 15*time.Minute)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "unknown photo path")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func photoName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("photo-%s%s", uuid.NewString(), ext)
}

func photoNameForType(contentType string) string {
	ext := ".jpg"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("photo-%s%s", uuid.NewString(), ext)
}
