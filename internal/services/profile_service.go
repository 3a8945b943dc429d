package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	// ResolveCompany / ResolveSeeker загружают профиль по id сессии.
	// Любая ошибка превращается в ErrUnauthenticated.
	ResolveCompany(ctx context.Context, db *gorm.DB, userID string) (*models.Company, error)
	ResolveSeeker(ctx context.Context, db *gorm.DB, userID string) (*models.JobSeeker, error)

	UpdateCompanyProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCompanyProfileRequest, logo *multipart.FileHeader) (*dto.CompanyProfileResponse, error)
	UpdateSeekerProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateSeekerProfileRequest, resume *multipart.FileHeader) (*dto.SeekerProfileResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo   repositories.ProfileRepository
	uploadService UploadService
	now           func() time.Time
}

func NewProfileService(profileRepo repositories.ProfileRepository, uploadService UploadService) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		profileRepo:   profileRepo,
		uploadService: uploadService,
		now:           time.Now,
	}
}

func (s *ProfileServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// ==========================
// Resolver
// ==========================

func (s *ProfileServiceImpl) ResolveCompany(ctx context.Context, db *gorm.DB, userID string) (*models.Company, error) {
	company, err := s.profileRepo.FindCompanyByID(db, userID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to resolve company profile", err, "user_id", userID)
		return nil, apperrors.ErrUnauthenticated
	}
	return company, nil
}

func (s *ProfileServiceImpl) ResolveSeeker(ctx context.Context, db *gorm.DB, userID string) (*models.JobSeeker, error) {
	seeker, err := s.profileRepo.FindSeekerByID(db, userID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to resolve seeker profile", err, "user_id", userID)
		return nil, apperrors.ErrUnauthenticated
	}
	return seeker, nil
}

// ==========================
// Profile editors
// ==========================

// UpdateSeekerProfile - сначала файл, потом строка профиля.
// Если запись строки упала после загрузки, объект остается в хранилище.
func (s *ProfileServiceImpl) UpdateSeekerProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateSeekerProfileRequest, resume *multipart.FileHeader) (*dto.SeekerProfileResponse, error) {
	if _, err := s.ResolveSeeker(ctx, db, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"full_name":  strings.TrimSpace(req.FullName),
		"headline":   strings.TrimSpace(req.Headline),
		"about":      strings.TrimSpace(req.About),
		"location":   strings.TrimSpace(req.Location),
		"updated_at": s.now().UTC(),
	}

	var uploaded *UploadResult
	if resume != nil {
		res, err := s.uploadService.Upload(ctx, UploadKindResume, userID, resume)
		if err != nil {
			return nil, err
		}
		uploaded = res
		fields["resume_url"] = res.URL
	}

	if err := s.profileRepo.UpdateSeeker(db, userID, fields); err != nil {
		s.logOrphan(ctx, uploaded, userID)
		return nil, handleProfileError(err)
	}

	seeker, err := s.profileRepo.FindSeekerByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	return &dto.SeekerProfileResponse{
		Profile: seeker,
		Message: "Profile updated successfully",
	}, nil
}

func (s *ProfileServiceImpl) UpdateCompanyProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCompanyProfileRequest, logo *multipart.FileHeader) (*dto.CompanyProfileResponse, error) {
	if _, err := s.ResolveCompany(ctx, db, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"company_name": strings.TrimSpace(req.CompanyName),
		"description":  sanitizeHTML(req.Description),
		"website":      req.Website,
		"location":     strings.TrimSpace(req.Location),
		"industry":     strings.TrimSpace(req.Industry),
		"updated_at":   s.now().UTC(),
	}

	var uploaded *UploadResult
	if logo != nil {
		res, err := s.uploadService.Upload(ctx, UploadKindLogo, userID, logo)
		if err != nil {
			return nil, err
		}
		uploaded = res
		fields["logo_url"] = res.URL
	}

	if err := s.profileRepo.UpdateCompany(db, userID, fields); err != nil {
		s.logOrphan(ctx, uploaded, userID)
		return nil, handleProfileError(err)
	}

	company, err := s.profileRepo.FindCompanyByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	return &dto.CompanyProfileResponse{
		Profile: company,
		Message: "Company profile updated successfully",
	}, nil
}

func (s *ProfileServiceImpl) logOrphan(ctx context.Context, uploaded *UploadResult, userID string) {
	if uploaded == nil {
		return
	}
	logger.CtxWarn(ctx, "Uploaded object left without profile reference", "key", uploaded.Key, "user_id", userID)
}

func handleProfileError(err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrNotFound(err, "profile", "Profile not found")
	}
	return apperrors.DatabaseError(err)
}
