package handlers

import (
	"io"
	"mime"
	"path"
	"strings"

	"gigconnect/internal/logger"
	"gigconnect/internal/storage"
	"gigconnect/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored objects over HTTP. It backs the local
// storage mode, where no CDN fronts the files.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storageInstance storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storageInstance,
	}
}

func (h *FileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/files/*path", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	raw := strings.TrimPrefix(c.Param("path"), "/")

	cleaned := path.Clean(raw)
	if cleaned == "." || cleaned == "/" || strings.HasPrefix(cleaned, "..") {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), cleaned)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(path.Ext(cleaned))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=3600")

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream file", err, "path", cleaned)
	}
}
