package services

import (
	"context"
	"errors"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SavedJobService interface {
	ListSavedJobs(ctx context.Context, db *gorm.DB, seekerID string) ([]dto.SavedJobItem, error)
	SaveJob(ctx context.Context, db *gorm.DB, seekerID string, req *dto.SaveJobRequest) (*dto.SavedJobItem, error)
	RemoveSavedJob(ctx context.Context, db *gorm.DB, seekerID, savedJobID string) error
}

type SavedJobServiceImpl struct {
	profiles     ProfileService
	savedJobRepo repositories.SavedJobRepository
	jobRepo      repositories.JobRepository
	now          func() time.Time
}

func NewSavedJobService(
	profiles ProfileService,
	savedJobRepo repositories.SavedJobRepository,
	jobRepo repositories.JobRepository,
) *SavedJobServiceImpl {
	return &SavedJobServiceImpl{
		profiles:     profiles,
		savedJobRepo: savedJobRepo,
		jobRepo:      jobRepo,
		now:          time.Now,
	}
}

func (s *SavedJobServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SavedJobServiceImpl) ListSavedJobs(ctx context.Context, db *gorm.DB, seekerID string) ([]dto.SavedJobItem, error) {
	seeker, err := s.profiles.ResolveSeeker(ctx, db, seekerID)
	if err != nil {
		return nil, err
	}

	saved, err := s.savedJobRepo.ListBySeeker(db, seeker.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to list saved jobs", err, "seeker_id", seeker.ID)
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]dto.SavedJobItem, 0, len(saved))
	for i := range saved {
		items = append(items, dto.NewSavedJobItem(&saved[i]))
	}
	return items, nil
}

// SaveJob - одна закладка на пару (соискатель, вакансия); повтор дает конфликт
func (s *SavedJobServiceImpl) SaveJob(ctx context.Context, db *gorm.DB, seekerID string, req *dto.SaveJobRequest) (*dto.SavedJobItem, error) {
	seeker, err := s.profiles.ResolveSeeker(ctx, db, seekerID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByIDWithCompany(db, req.JobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	saved := &models.SavedJob{
		JobID:     job.ID,
		SeekerID:  seeker.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.savedJobRepo.Create(db, saved); err != nil {
		if errors.Is(err, repositories.ErrSavedJobExists) {
			return nil, apperrors.ErrAlreadySaved
		}
		logger.CtxWithError(ctx, "Failed to save job", err, "job_id", job.ID)
		return nil, apperrors.DatabaseError(err)
	}

	saved.Job = job
	item := dto.NewSavedJobItem(saved)
	return &item, nil
}

func (s *SavedJobServiceImpl) RemoveSavedJob(ctx context.Context, db *gorm.DB, seekerID, savedJobID string) error {
	saved, err := s.savedJobRepo.FindByID(db, savedJobID)
	if err != nil {
		return handleSavedJobError(err)
	}
	if saved.SeekerID != seekerID {
		return apperrors.NewForbiddenError("You can only remove your own saved jobs")
	}

	if err := s.savedJobRepo.Delete(db, saved.ID); err != nil {
		logger.CtxWithError(ctx, "Failed to remove saved job", err, "saved_job_id", saved.ID)
		return handleSavedJobError(err)
	}
	return nil
}

func handleSavedJobError(err error) error {
	if errors.Is(err, repositories.ErrSavedJobNotFound) {
		return apperrors.ErrSavedJobNotFound
	}
	return apperrors.DatabaseError(err)
}
