package dto

import (
	"jobportal_backend/internal/models"
)

// UpdateSeekerProfileRequest - форма редактора профиля соискателя.
// Приходит как multipart/form-data (вместе с файлом resume) или JSON.
type UpdateSeekerProfileRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"required,max=120"`
	Headline string `json:"headline" form:"headline" validate:"max=160"`
	About    string `json:"about" form:"about" validate:"max=5000"`
	Location string `json:"location" form:"location" validate:"max=120"`
}

// UpdateCompanyProfileRequest - форма редактора профиля компании (файл logo опционален)
type UpdateCompanyProfileRequest struct {
	CompanyName string `json:"company_name" form:"company_name" validate:"required,max=160"`
	Description string `json:"description" form:"description" validate:"max=5000"`
	Website     string `json:"website" form:"website" validate:"omitempty,url,max=255"`
	Location    string `json:"location" form:"location" validate:"max=120"`
	Industry    string `json:"industry" form:"industry" validate:"max=120"`
}

type SeekerProfileResponse struct {
	Profile *models.JobSeeker `json:"profile"`
	Message string            `json:"message"`
}

type CompanyProfileResponse struct {
	Profile *models.Company `json:"profile"`
	Message string          `json:"message"`
}
