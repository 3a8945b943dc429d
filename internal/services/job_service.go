package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// JobService - вакансии компании (список, создание, правка, удаление)
type JobService interface {
	ListCompanyJobs(ctx context.Context, db *gorm.DB, companyID string) ([]models.Job, error)
	CreateJob(ctx context.Context, db *gorm.DB, companyID string, req *dto.CreateJobRequest) (*models.Job, error)
	GetCompanyJob(db *gorm.DB, companyID, jobID string) (*models.Job, error)
	UpdateJob(ctx context.Context, db *gorm.DB, companyID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	// DeleteJob удаляет вакансию вместе с откликами и закладками. Требует confirmed.
	DeleteJob(ctx context.Context, db *gorm.DB, companyID, jobID string, confirmed bool) error
}

type JobServiceImpl struct {
	profiles     ProfileService
	jobRepo      repositories.JobRepository
	appRepo      repositories.ApplicationRepository
	savedJobRepo repositories.SavedJobRepository
	now          func() time.Time
	onChange     func()
}

func NewJobService(
	profiles ProfileService,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	savedJobRepo repositories.SavedJobRepository,
) *JobServiceImpl {
	return &JobServiceImpl{
		profiles:     profiles,
		jobRepo:      jobRepo,
		appRepo:      appRepo,
		savedJobRepo: savedJobRepo,
		now:          time.Now,
	}
}

func (s *JobServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// OnChange - вызывается после успешного изменения вакансий (сброс кеша главной)
func (s *JobServiceImpl) OnChange(fn func()) {
	s.onChange = fn
}

func (s *JobServiceImpl) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *JobServiceImpl) ListCompanyJobs(ctx context.Context, db *gorm.DB, companyID string) ([]models.Job, error) {
	company, err := s.profiles.ResolveCompany(ctx, db, companyID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.FindByCompanyID(db, company.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to list company jobs", err, "company_id", company.ID)
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, db *gorm.DB, companyID string, req *dto.CreateJobRequest) (*models.Job, error) {
	if err := validateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	description, err := sanitizeDescription(req.Description)
	if err != nil {
		return nil, err
	}

	company, err := s.profiles.ResolveCompany(ctx, db, companyID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusActive
	}
	currency := strings.ToUpper(req.SalaryCurrency)
	if currency == "" {
		currency = "USD"
	}

	now := s.now().UTC()
	job := &models.Job{
		BaseModel:      models.BaseModel{CreatedAt: now, UpdatedAt: now},
		CompanyID:      company.ID,
		Title:          strings.TrimSpace(req.Title),
		Description:    description,
		Location:       strings.TrimSpace(req.Location),
		JobType:        req.JobType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: currency,
		Requirements:   sanitizeHTML(req.Requirements),
		Status:         status,
		ExpiresAt:      req.ExpiresAt,
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		logger.CtxWithError(ctx, "Failed to create job", err, "company_id", company.ID)
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "Job created", "job_id", job.ID, "company_id", company.ID)
	s.changed()
	return job, nil
}

func (s *JobServiceImpl) GetCompanyJob(db *gorm.DB, companyID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if job.CompanyID != companyID {
		return nil, apperrors.ErrJobNotOwned
	}
	return job, nil
}

func (s *JobServiceImpl) UpdateJob(ctx context.Context, db *gorm.DB, companyID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	job, err := s.GetCompanyJob(tx, companyID, jobID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		description, err := sanitizeDescription(*req.Description)
		if err != nil {
			return nil, err
		}
		fields["description"] = description
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.JobType != nil {
		fields["job_type"] = *req.JobType
	}
	if req.SalaryMin != nil {
		fields["salary_min"] = *req.SalaryMin
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		fields["salary_max"] = *req.SalaryMax
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		fields["salary_currency"] = strings.ToUpper(*req.SalaryCurrency)
	}
	if req.Requirements != nil {
		fields["requirements"] = sanitizeHTML(*req.Requirements)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ExpiresAt != nil {
		fields["expires_at"] = *req.ExpiresAt
	}

	if err := validateSalaryRange(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, err
	}

	fields["updated_at"] = s.now().UTC()
	if err := s.jobRepo.Update(tx, jobID, fields); err != nil {
		logger.CtxWithError(ctx, "Failed to update job", err, "job_id", jobID)
		return nil, handleJobError(err)
	}

	updated, err := s.jobRepo.FindByID(tx, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	s.changed()
	return updated, nil
}

func (s *JobServiceImpl) DeleteJob(ctx context.Context, db *gorm.DB, companyID, jobID string, confirmed bool) error {
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.GetCompanyJob(tx, companyID, jobID); err != nil {
		return err
	}

	// Зависимые строки удаляем явно: каскад в БД есть не во всех окружениях
	if err := s.appRepo.DeleteByJobID(tx, jobID); err != nil {
		return apperrors.DatabaseError(err)
	}
	if err := s.savedJobRepo.DeleteByJobID(tx, jobID); err != nil {
		return apperrors.DatabaseError(err)
	}
	if err := s.jobRepo.Delete(tx, jobID); err != nil {
		logger.CtxWithError(ctx, "Failed to delete job", err, "job_id", jobID)
		return handleJobError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "Job deleted", "job_id", jobID, "company_id", companyID)
	s.changed()
	return nil
}

// sanitizeDescription - описание обязательно и после очистки HTML
func sanitizeDescription(raw string) (string, error) {
	description := sanitizeHTML(raw)
	if description == "" {
		return "", apperrors.ValidationError(map[string]string{
			"description": "Description must contain text",
		})
	}
	return description, nil
}

func validateSalaryRange(min, max *int64) error {
	if min != nil && max != nil && *min > *max {
		return apperrors.ValidationError(map[string]string{
			"salary_max": "Must be greater than or equal to salary_min",
		})
	}
	return nil
}

func handleJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.DatabaseError(err)
}
