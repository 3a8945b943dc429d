package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// CreateJobRequest - новая вакансия компании
type CreateJobRequest struct {
	Title          string           `json:"title" validate:"required,max=200"`
	Description    string           `json:"description" validate:"required,max=20000"`
	Location       string           `json:"location" validate:"required,max=120"`
	JobType        models.JobType   `json:"job_type" validate:"required,is-job-type"`
	SalaryMin      *int64           `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax      *int64           `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency string           `json:"salary_currency,omitempty" validate:"omitempty,len=3"`
	Requirements   string           `json:"requirements,omitempty" validate:"max=10000"`
	Status         models.JobStatus `json:"status,omitempty" validate:"omitempty,is-job-status"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
}

// UpdateJobRequest - частичное обновление, nil-поля не трогаются
type UpdateJobRequest struct {
	Title          *string           `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string           `json:"description,omitempty" validate:"omitempty,min=1,max=20000"`
	Location       *string           `json:"location,omitempty" validate:"omitempty,min=1,max=120"`
	JobType        *models.JobType   `json:"job_type,omitempty" validate:"omitempty,is-job-type"`
	SalaryMin      *int64            `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax      *int64            `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency *string           `json:"salary_currency,omitempty" validate:"omitempty,len=3"`
	Requirements   *string           `json:"requirements,omitempty" validate:"omitempty,max=10000"`
	Status         *models.JobStatus `json:"status,omitempty" validate:"omitempty,is-job-status"`
	ExpiresAt      *time.Time        `json:"expires_at,omitempty"`
}

// BrowseJobsRequest - фильтры публичного списка вакансий
type BrowseJobsRequest struct {
	Query    string         `form:"q" validate:"max=100"`
	Location string         `form:"location" validate:"max=120"`
	JobType  models.JobType `form:"job_type" validate:"omitempty,is-job-type"`
	Page     int            `form:"-"`
	PageSize int            `form:"-"`
}

// JobCard - карточка вакансии для публичных страниц
type JobCard struct {
	ID           string         `json:"id"`
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	CompanyID    string         `json:"company_id"`
	Company      string         `json:"company"`
	Logo         string         `json:"logo,omitempty"`
	Location     string         `json:"location"`
	Salary       string         `json:"salary,omitempty"`
	JobType      models.JobType `json:"job_type"`
	PostedDate   string         `json:"posted_date"`
	PostedAt     time.Time      `json:"posted_at"`
	Description  string         `json:"description,omitempty"`
	Requirements string         `json:"requirements,omitempty"`
}

type JobListResponse struct {
	Jobs     []JobCard `json:"jobs"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// CompanyCard - строка списка компаний
type CompanyCard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Logo       string `json:"logo,omitempty"`
	Location   string `json:"location,omitempty"`
	Industry   string `json:"industry,omitempty"`
	ActiveJobs int64  `json:"active_jobs"`
}

// HomeResponse - данные главной страницы
type HomeResponse struct {
	FeaturedJobs      []JobCard     `json:"featured_jobs"`
	FeaturedCompanies []CompanyCard `json:"featured_companies"`
}
