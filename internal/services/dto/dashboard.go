package dto

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/stats"
)

// CompanyStats - четыре счетчика дашборда компании
type CompanyStats struct {
	stats.JobCounts
	stats.ApplicationCounts
}

type CompanyDashboardResponse struct {
	Company *models.Company `json:"company"`
	Stats   CompanyStats    `json:"stats"`
}

type SeekerDashboardResponse struct {
	Seeker *models.JobSeeker  `json:"seeker"`
	Stats  stats.SeekerCounts `json:"stats"`
}
