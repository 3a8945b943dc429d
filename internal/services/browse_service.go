package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"jobportal_backend/internal/cache"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/dustin/go-humanize"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	homeCacheKey         = "browse:home"
	featuredJobsLimit    = 6
	featuredCompanyLimit = 6
	DefaultCompanyLimit  = 50

	// maxJobsOffset - предел OFFSET, дальше номер страницы не растет
	maxJobsOffset = math.MaxInt32
)

// BrowseService - публичные страницы: список вакансий, карточка, компании, главная
type BrowseService interface {
	ListJobs(ctx context.Context, db *gorm.DB, req *dto.BrowseJobsRequest) (*dto.JobListResponse, error)
	GetJob(db *gorm.DB, jobID string) (*dto.JobCard, error)
	ListCompanies(ctx context.Context, db *gorm.DB, limit int) ([]dto.CompanyCard, error)
	Home(ctx context.Context, db *gorm.DB) (*dto.HomeResponse, error)
	InvalidateHome()
}

type BrowseServiceImpl struct {
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
	cache       *cache.Cache
	now         func() time.Time
}

// NewBrowseService - cache может быть nil, тогда главная собирается на каждый запрос
func NewBrowseService(jobRepo repositories.JobRepository, profileRepo repositories.ProfileRepository, c *cache.Cache) *BrowseServiceImpl {
	return &BrowseServiceImpl{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		cache:       c,
		now:         time.Now,
	}
}

func (s *BrowseServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *BrowseServiceImpl) ListJobs(ctx context.Context, db *gorm.DB, req *dto.BrowseJobsRequest) (*dto.JobListResponse, error) {
	page, pageSize := req.Page, req.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if page-1 > maxJobsOffset/pageSize {
		page = maxJobsOffset/pageSize + 1
	}

	jobs, total, err := s.jobRepo.ListActive(db, repositories.JobFilter{
		Query:    req.Query,
		Location: req.Location,
		JobType:  req.JobType,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		logger.CtxWithError(ctx, "Failed to list active jobs", err)
		return nil, apperrors.DatabaseError(err)
	}

	now := s.now()
	cards := make([]dto.JobCard, 0, len(jobs))
	for i := range jobs {
		cards = append(cards, buildJobCard(&jobs[i], now, false))
	}

	return &dto.JobListResponse{
		Jobs:     cards,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetJob - карточка с описанием; неактивные вакансии публично не видны
func (s *BrowseServiceImpl) GetJob(db *gorm.DB, jobID string) (*dto.JobCard, error) {
	job, err := s.jobRepo.FindByIDWithCompany(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if !job.IsActive() {
		return nil, apperrors.ErrJobNotFound
	}
	card := buildJobCard(job, s.now(), true)
	return &card, nil
}

func (s *BrowseServiceImpl) ListCompanies(ctx context.Context, db *gorm.DB, limit int) ([]dto.CompanyCard, error) {
	if limit <= 0 {
		limit = DefaultCompanyLimit
	}
	rows, err := s.profileRepo.ListCompaniesWithActiveJobs(db, limit)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to list companies", err)
		return nil, apperrors.DatabaseError(err)
	}

	cards := make([]dto.CompanyCard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, dto.CompanyCard{
			ID:         r.ID,
			Name:       r.CompanyName,
			Logo:       r.LogoURL,
			Location:   r.Location,
			Industry:   r.Industry,
			ActiveJobs: r.ActiveJobs,
		})
	}
	return cards, nil
}

// Home - свежие вакансии и компании; ответ кешируется на cache.ttl
func (s *BrowseServiceImpl) Home(ctx context.Context, db *gorm.DB) (*dto.HomeResponse, error) {
	if s.cache != nil {
		var cached dto.HomeResponse
		found, err := s.cache.GetJSON(homeCacheKey, &cached)
		if err != nil {
			logger.CtxWarn(ctx, "Home cache read failed", "error", err)
		}
		if found {
			return &cached, nil
		}
	}

	jobs, err := s.ListJobs(ctx, db, &dto.BrowseJobsRequest{Page: 1, PageSize: featuredJobsLimit})
	if err != nil {
		return nil, err
	}
	companies, err := s.ListCompanies(ctx, db, featuredCompanyLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.HomeResponse{
		FeaturedJobs:      jobs.Jobs,
		FeaturedCompanies: companies,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(homeCacheKey, resp); err != nil {
			logger.CtxWarn(ctx, "Home cache write failed", "error", err)
		}
	}
	return resp, nil
}

// InvalidateHome сбрасывает кеш главной (после изменений вакансий)
func (s *BrowseServiceImpl) InvalidateHome() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(homeCacheKey); err != nil {
		logger.Warn("Home cache invalidation failed", "error", err)
	}
}

// ============================================
// Карточка вакансии
// ============================================

func buildJobCard(job *models.Job, now time.Time, withDetails bool) dto.JobCard {
	card := dto.JobCard{
		ID:         job.ID,
		Title:      job.Title,
		CompanyID:  job.CompanyID,
		Location:   job.Location,
		Salary:     FormatSalary(job.SalaryMin, job.SalaryMax, job.SalaryCurrency),
		JobType:    job.JobType,
		PostedDate: humanize.RelTime(job.CreatedAt, now, "ago", "from now"),
		PostedAt:   job.CreatedAt,
	}
	if job.Company != nil {
		card.Company = job.Company.CompanyName
		card.Logo = job.Company.LogoURL
	}
	card.Slug = slug.Make(card.Title + " " + card.Company)
	if withDetails {
		card.Description = job.Description
		card.Requirements = job.Requirements
	}
	return card
}

// FormatSalary - текст вилки: "USD 50,000 - 80,000", "From USD 50,000", "Up to USD 80,000"
func FormatSalary(min, max *int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	switch {
	case min != nil && max != nil:
		if *min == *max {
			return fmt.Sprintf("%s %s", currency, humanize.Comma(*min))
		}
		return fmt.Sprintf("%s %s - %s", currency, humanize.Comma(*min), humanize.Comma(*max))
	case min != nil:
		return fmt.Sprintf("From %s %s", currency, humanize.Comma(*min))
	case max != nil:
		return fmt.Sprintf("Up to %s %s", currency, humanize.Comma(*max))
	}
	return ""
}
