package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// maxServedFileSize - файлы больше этого не отдаются через API
const maxServedFileSize = 20 << 20

// FileHandler отдает объекты локального хранилища (резюме, логотипы).
// Для S3/R2 URL указывает прямо на бакет, и этот маршрут не используется.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

// ServeFile отдает объект по ключу
func (h *FileHandler) ServeFile(c *gin.Context) {
	key, err := storage.CleanKey(c.Param("path"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			apperrors.HandleError(c, apperrors.ErrNotFound(err, "file", "File not found"))
			return
		}
		logger.CtxWithError(c.Request.Context(), "Failed to read stored object", err, "key", key)
		apperrors.HandleError(c, apperrors.ErrStorage(err))
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxServedFileSize+1))
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrStorage(err))
		return
	}
	if len(data) > maxServedFileSize {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return
	}

	contentType := mimetype.Detect(data).String()

	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Cache-Control", "public, max-age=31536000")
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment")
	} else {
		c.Header("Content-Disposition", "inline")
	}
	c.Data(http.StatusOK, contentType, data)
}

// CheckFileExists - HEAD запрос: 200, если объект есть
func (h *FileHandler) CheckFileExists(c *gin.Context) {
	key, err := storage.CleanKey(c.Param("path"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	exists, err := h.storage.Exists(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}
