package models

import "time"

type Job struct {
	BaseModel
	CompanyID      string     `gorm:"type:varchar(36);not null;index" json:"company_id"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Location       string     `gorm:"not null" json:"location"`
	JobType        JobType    `gorm:"type:varchar(20);not null" json:"job_type"`
	SalaryMin      *int64     `json:"salary_min,omitempty"`
	SalaryMax      *int64     `json:"salary_max,omitempty"`
	SalaryCurrency string     `gorm:"type:varchar(8);default:'USD'" json:"salary_currency,omitempty"`
	Requirements   string     `gorm:"type:text" json:"requirements,omitempty"`
	Status         JobStatus  `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`

	Company      *Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	SavedBy      []SavedJob    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}
