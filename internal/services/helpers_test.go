package services_test

import (
	"io"
	"testing"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedNow - опорное время для тестов со счетчиками и сроками
var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db      *gorm.DB
	mail    *email.MockSender
	storage storage.Storage
	tokens  *auth.TokenManager

	auth         *services.AuthServiceImpl
	profiles     *services.ProfileServiceImpl
	dashboard    *services.DashboardServiceImpl
	jobs         *services.JobServiceImpl
	applications *services.ApplicationServiceImpl
	savedJobs    *services.SavedJobServiceImpl
	browse       *services.BrowseServiceImpl
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.InitWithWriter("test", io.Discard)

	db := testutil.NewTestDB(t)

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	templates, err := email.NewTemplateManager()
	require.NoError(t, err)
	mail := email.NewMockSender()
	notifier := email.NewNotifier(mail, templates, "http://localhost:3000")

	tokens := auth.NewTokenManager("services_test_secret", time.Hour)

	userRepo := repositories.NewUserRepository()
	refreshRepo := repositories.NewRefreshTokenRepository()
	profileRepo := repositories.NewProfileRepository()
	jobRepo := repositories.NewJobRepository()
	appRepo := repositories.NewApplicationRepository()
	savedRepo := repositories.NewSavedJobRepository()

	upload := services.NewUploadService(store, nil)
	profiles := services.NewProfileService(profileRepo, upload)

	return &testEnv{
		db:           db,
		mail:         mail,
		storage:      store,
		tokens:       tokens,
		auth:         services.NewAuthService(userRepo, profileRepo, refreshRepo, tokens, notifier, 0),
		profiles:     profiles,
		dashboard:    services.NewDashboardService(profiles, jobRepo, appRepo, savedRepo),
		jobs:         services.NewJobService(profiles, jobRepo, appRepo, savedRepo),
		applications: services.NewApplicationService(profiles, appRepo, jobRepo, notifier),
		savedJobs:    services.NewSavedJobService(profiles, savedRepo, jobRepo),
		browse:       services.NewBrowseService(jobRepo, profileRepo, nil),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
