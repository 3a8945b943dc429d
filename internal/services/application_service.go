package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	// Компания
	ListCompanyApplications(ctx context.Context, db *gorm.DB, companyID string) ([]dto.CompanyApplicationItem, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, companyID, applicationID string, status models.ApplicationStatus) (*dto.CompanyApplicationItem, error)

	// Соискатель
	ListSeekerApplications(ctx context.Context, db *gorm.DB, seekerID string) ([]dto.SeekerApplicationItem, error)
	Apply(ctx context.Context, db *gorm.DB, seekerID string, req *dto.CreateApplicationRequest) (*dto.SeekerApplicationItem, error)
	Withdraw(ctx context.Context, db *gorm.DB, seekerID, applicationID string, confirmed bool) error
}

type ApplicationServiceImpl struct {
	profiles ProfileService
	appRepo  repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	notifier *email.Notifier
	now      func() time.Time
}

func NewApplicationService(
	profiles ProfileService,
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	notifier *email.Notifier,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		profiles: profiles,
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *ApplicationServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// ============================================
// Компания
// ============================================

func (s *ApplicationServiceImpl) ListCompanyApplications(ctx context.Context, db *gorm.DB, companyID string) ([]dto.CompanyApplicationItem, error) {
	company, err := s.profiles.ResolveCompany(ctx, db, companyID)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListByCompany(db, company.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to list company applications", err, "company_id", company.ID)
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]dto.CompanyApplicationItem, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewCompanyApplicationItem(&apps[i]))
	}
	return items, nil
}

// UpdateStatus - любой статус из перечисления может смениться на любой другой
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, companyID, applicationID string, status models.ApplicationStatus) (*dto.CompanyApplicationItem, error) {
	if !status.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{
			"status": "Must be one of: pending, reviewing, accepted, rejected",
		})
	}

	app, err := s.appRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	if app.CompanyID != companyID {
		return nil, apperrors.NewForbiddenError("You can only manage applications for your own jobs")
	}

	now := s.now().UTC()
	if err := s.appRepo.UpdateStatus(db, app.ID, status, now); err != nil {
		logger.CtxWithError(ctx, "Failed to update application status", err, "application_id", app.ID)
		return nil, handleApplicationError(err)
	}

	previous := app.Status
	app.Status = status
	app.UpdatedAt = now

	logger.CtxInfo(ctx, "Application status updated",
		"application_id", app.ID,
		"from", previous,
		"to", status,
	)

	if previous != status && app.Seeker != nil && app.Job != nil {
		s.notify(ctx, "application_status", func() error {
			return s.notifier.SendApplicationStatus(app.Seeker.Email, app.Seeker.FullName, app.Job.Title, string(status))
		})
	}

	item := dto.NewCompanyApplicationItem(app)
	return &item, nil
}

// ============================================
// Соискатель
// ============================================

func (s *ApplicationServiceImpl) ListSeekerApplications(ctx context.Context, db *gorm.DB, seekerID string) ([]dto.SeekerApplicationItem, error) {
	seeker, err := s.profiles.ResolveSeeker(ctx, db, seekerID)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListBySeeker(db, seeker.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to list seeker applications", err, "seeker_id", seeker.ID)
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]dto.SeekerApplicationItem, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewSeekerApplicationItem(&apps[i]))
	}
	return items, nil
}

// Apply - отклик на активную вакансию. company_id берется у вакансии.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, seekerID string, req *dto.CreateApplicationRequest) (*dto.SeekerApplicationItem, error) {
	seeker, err := s.profiles.ResolveSeeker(ctx, db, seekerID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByIDWithCompany(db, req.JobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if !job.IsActive() {
		return nil, apperrors.ErrJobNotActive
	}

	now := s.now().UTC()
	app := &models.Application{
		BaseModel:   models.BaseModel{CreatedAt: now, UpdatedAt: now},
		JobID:       job.ID,
		SeekerID:    seeker.ID,
		CompanyID:   job.CompanyID,
		CoverLetter: strings.TrimSpace(req.CoverLetter),
		ResumeURL:   seeker.ResumeURL,
		Status:      models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(db, app); err != nil {
		if errors.Is(err, repositories.ErrApplicationExists) {
			return nil, apperrors.ErrAlreadyApplied
		}
		logger.CtxWithError(ctx, "Failed to create application", err, "job_id", job.ID)
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "Application created", "application_id", app.ID, "job_id", job.ID)

	if job.Company != nil {
		s.notify(ctx, "new_application", func() error {
			return s.notifier.SendNewApplication(job.Company.Email, job.Company.CompanyName, job.Title, seeker.FullName)
		})
	}

	app.Job = job
	item := dto.NewSeekerApplicationItem(app)
	return &item, nil
}

// Withdraw - удаление своей заявки. Принятую заявку отозвать нельзя.
func (s *ApplicationServiceImpl) Withdraw(ctx context.Context, db *gorm.DB, seekerID, applicationID string, confirmed bool) error {
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	app, err := s.appRepo.FindByID(tx, applicationID)
	if err != nil {
		return handleApplicationError(err)
	}
	if app.SeekerID != seekerID {
		return apperrors.NewForbiddenError("You can only withdraw your own applications")
	}
	if !app.Status.CanWithdraw() {
		return apperrors.ErrCannotWithdrawAccepted
	}

	if err := s.appRepo.Delete(tx, app.ID); err != nil {
		logger.CtxWithError(ctx, "Failed to withdraw application", err, "application_id", app.ID)
		return handleApplicationError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "Application withdrawn", "application_id", app.ID)
	return nil
}

// notify отправляет письмо в фоне; ошибки только логируются
func (s *ApplicationServiceImpl) notify(ctx context.Context, kind string, send func() error) {
	if s.notifier == nil {
		return
	}
	requestID := logger.GetRequestID(ctx)
	go func() {
		if err := send(); err != nil {
			logger.Warn("Failed to send notification", "kind", kind, "error", err, "request_id", requestID)
		}
	}()
}

func handleApplicationError(err error) error {
	if errors.Is(err, repositories.ErrApplicationNotFound) {
		return apperrors.ErrApplicationNotFound
	}
	return apperrors.DatabaseError(err)
}
