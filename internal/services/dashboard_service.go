package services

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/stats"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DashboardService собирает профиль и счетчики. Счетчики считаются заново при каждом запросе.
type DashboardService interface {
	CompanyDashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.CompanyDashboardResponse, error)
	SeekerDashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.SeekerDashboardResponse, error)
}

type DashboardServiceImpl struct {
	profiles     ProfileService
	jobRepo      repositories.JobRepository
	appRepo      repositories.ApplicationRepository
	savedJobRepo repositories.SavedJobRepository
	now          func() time.Time
}

func NewDashboardService(
	profiles ProfileService,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	savedJobRepo repositories.SavedJobRepository,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		profiles:     profiles,
		jobRepo:      jobRepo,
		appRepo:      appRepo,
		savedJobRepo: savedJobRepo,
		now:          time.Now,
	}
}

func (s *DashboardServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *DashboardServiceImpl) CompanyDashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.CompanyDashboardResponse, error) {
	company, err := s.profiles.ResolveCompany(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.FindByCompanyID(db, company.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to fetch company jobs", err, "company_id", company.ID)
		return nil, apperrors.DatabaseError(err)
	}

	apps, err := s.appRepo.ListForStats(db, company.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to fetch company applications", err, "company_id", company.ID)
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.CompanyDashboardResponse{
		Company: company,
		Stats: dto.CompanyStats{
			JobCounts:         stats.CountJobs(jobs),
			ApplicationCounts: stats.CountApplications(apps, s.now()),
		},
	}, nil
}

func (s *DashboardServiceImpl) SeekerDashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.SeekerDashboardResponse, error) {
	seeker, err := s.profiles.ResolveSeeker(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	applications, err := s.appRepo.CountBySeeker(db, seeker.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to count applications", err, "seeker_id", seeker.ID)
		return nil, apperrors.DatabaseError(err)
	}

	saved, err := s.savedJobRepo.CountBySeeker(db, seeker.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to count saved jobs", err, "seeker_id", seeker.ID)
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.SeekerDashboardResponse{
		Seeker: seeker,
		Stats:  stats.CountSeeker(applications, saved),
	}, nil
}
