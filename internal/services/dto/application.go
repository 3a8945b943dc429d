package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// CreateApplicationRequest - отклик соискателя на вакансию
type CreateApplicationRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid"`
	CoverLetter string `json:"cover_letter,omitempty" validate:"max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
}

// CompanyApplicationItem - строка списка откликов компании
type CompanyApplicationItem struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	JobTitle    string                   `json:"job_title"`
	SeekerID    string                   `json:"seeker_id"`
	SeekerName  string                   `json:"seeker_name"`
	SeekerEmail string                   `json:"seeker_email"`
	CoverLetter string                   `json:"cover_letter,omitempty"`
	ResumeURL   string                   `json:"resume_url,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// SeekerApplicationItem - строка списка откликов соискателя
type SeekerApplicationItem struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	JobTitle    string                   `json:"job_title"`
	Location    string                   `json:"location"`
	JobType     models.JobType           `json:"job_type"`
	CompanyID   string                   `json:"company_id"`
	CompanyName string                   `json:"company_name"`
	Status      models.ApplicationStatus `json:"status"`
	CanWithdraw bool                     `json:"can_withdraw"`
	CreatedAt   time.Time                `json:"created_at"`
}

type SaveJobRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

// SavedJobItem - закладка с данными вакансии
type SavedJobItem struct {
	ID           string           `json:"id"`
	JobID        string           `json:"job_id"`
	Title        string           `json:"title"`
	Location     string           `json:"location"`
	JobType      models.JobType   `json:"job_type"`
	JobStatus    models.JobStatus `json:"job_status"`
	CompanyID    string           `json:"company_id"`
	CompanyName  string           `json:"company_name"`
	JobCreatedAt time.Time        `json:"job_created_at"`
	SavedAt      time.Time        `json:"saved_at"`
}

// NewCompanyApplicationItem собирает строку из отклика с подгруженными Job и Seeker
func NewCompanyApplicationItem(a *models.Application) CompanyApplicationItem {
	item := CompanyApplicationItem{
		ID:          a.ID,
		JobID:       a.JobID,
		SeekerID:    a.SeekerID,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Job != nil {
		item.JobTitle = a.Job.Title
	}
	if a.Seeker != nil {
		item.SeekerName = a.Seeker.FullName
		item.SeekerEmail = a.Seeker.Email
	}
	return item
}

func NewSeekerApplicationItem(a *models.Application) SeekerApplicationItem {
	item := SeekerApplicationItem{
		ID:          a.ID,
		JobID:       a.JobID,
		CompanyID:   a.CompanyID,
		Status:      a.Status,
		CanWithdraw: a.Status.CanWithdraw(),
		CreatedAt:   a.CreatedAt,
	}
	if a.Job != nil {
		item.JobTitle = a.Job.Title
		item.Location = a.Job.Location
		item.JobType = a.Job.JobType
		if a.Job.Company != nil {
			item.CompanyName = a.Job.Company.CompanyName
		}
	}
	return item
}

func NewSavedJobItem(s *models.SavedJob) SavedJobItem {
	item := SavedJobItem{
		ID:      s.ID,
		JobID:   s.JobID,
		SavedAt: s.CreatedAt,
	}
	if s.Job != nil {
		item.Title = s.Job.Title
		item.Location = s.Job.Location
		item.JobType = s.Job.JobType
		item.JobStatus = s.Job.Status
		item.CompanyID = s.Job.CompanyID
		item.JobCreatedAt = s.Job.CreatedAt
		if s.Job.Company != nil {
			item.CompanyName = s.Job.Company.CompanyName
		}
	}
	return item
}
