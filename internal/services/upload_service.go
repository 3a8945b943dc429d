package services

import (
	"context"
	"mime/multipart"
	"strings"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ============================================
// UPLOAD SERVICE (резюме и логотипы)
// ============================================

// UploadKind - папка в хранилище и набор разрешенных типов
type UploadKind string

const (
	UploadKindResume UploadKind = "resumes"
	UploadKindLogo   UploadKind = "logos"
)

// UploadResult - сохраненный объект
type UploadResult struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

type UploadService interface {
	// Upload сохраняет файл по ключу <kind>/<ownerID>-<random>.<ext> и возвращает публичный URL
	Upload(ctx context.Context, kind UploadKind, ownerID string, file *multipart.FileHeader) (*UploadResult, error)
}

// UploadConfig - ограничения на загружаемые файлы
type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes map[UploadKind][]string
}

func GetDefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize: 5 * 1024 * 1024,
		AllowedTypes: map[UploadKind][]string{
			UploadKindResume: {
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			},
			UploadKindLogo: {"image/jpeg", "image/png", "image/webp", "image/gif"},
		},
	}
}

type uploadService struct {
	storage storage.Storage
	config  *UploadConfig
}

func NewUploadService(storage storage.Storage, config *UploadConfig) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &uploadService{
		storage: storage,
		config:  config,
	}
}

func (s *uploadService) Upload(ctx context.Context, kind UploadKind, ownerID string, file *multipart.FileHeader) (*UploadResult, error) {
	allowed, ok := s.config.AllowedTypes[kind]
	if !ok {
		return nil, apperrors.NewBadRequestError("unknown upload kind: " + string(kind))
	}

	if file.Size > s.config.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{
			"max_size": s.config.MaxFileSize,
			"size":     file.Size,
		})
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	// Тип определяем по содержимому, а не по Content-Type от клиента
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !isAllowedType(mtype, allowed) {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]interface{}{
			"detected": mtype.String(),
			"allowed":  allowed,
		})
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, apperrors.InternalError(err)
	}

	key := buildObjectKey(kind, ownerID, mtype.Extension())
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]

	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		logger.CtxWithError(ctx, "Failed to save upload", err, "key", key)
		return nil, apperrors.ErrStorage(err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to get public URL", err, "key", key)
		return nil, apperrors.ErrStorage(err)
	}

	logger.CtxInfo(ctx, "File uploaded", "key", key, "content_type", contentType, "size", file.Size)

	return &UploadResult{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        file.Size,
	}, nil
}

func isAllowedType(mtype *mimetype.MIME, allowed []string) bool {
	for _, t := range allowed {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

func buildObjectKey(kind UploadKind, ownerID, ext string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return string(kind) + "/" + ownerID + "-" + random + ext
}
