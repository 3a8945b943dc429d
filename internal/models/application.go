package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application - отклик соискателя на вакансию.
// CompanyID всегда равен Job.CompanyID (выставляется сервисом при создании).
type Application struct {
	BaseModel
	JobID       string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_seeker" json:"job_id"`
	SeekerID    string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_seeker;index" json:"seeker_id"`
	CompanyID   string            `gorm:"type:varchar(36);not null;index" json:"company_id"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter,omitempty"`
	ResumeURL   string            `json:"resume_url,omitempty"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Job    *Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Seeker *JobSeeker `gorm:"foreignKey:SeekerID;constraint:OnDelete:CASCADE" json:"seeker,omitempty"`
}

// SavedJob - закладка соискателя, без статуса
type SavedJob struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_job_seeker" json:"job_id"`
	SeekerID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_job_seeker;index" json:"seeker_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Job    *Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Seeker *JobSeeker `gorm:"foreignKey:SeekerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *SavedJob) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
