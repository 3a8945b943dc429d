package services

import (
	"jobportal_backend/internal/auth"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	ProfileService     ProfileService
	DashboardService   DashboardService
	JobService         JobService
	ApplicationService ApplicationService
	SavedJobService    SavedJobService
	BrowseService      BrowseService
	UploadService      UploadService

	// Tokens нужен middleware для проверки access-токенов
	Tokens *auth.TokenManager
}
