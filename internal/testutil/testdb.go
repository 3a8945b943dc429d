// Package testutil - общие хелперы для тестов: in-memory БД, тестовый сервер, фикстуры.
package testutil

import (
	"testing"
	"time"

	"jobportal_backend/internal/database"
	"jobportal_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB открывает чистую SQLite базу в памяти и накатывает миграции.
// У каждого вызова своя база.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:   "sqlite",
		DSN:      ":memory:",
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err, "не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db), "миграция тестовой БД")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// ============================================
// Фикстуры (напрямую в БД, без API)
// ============================================

// CreateCompany создает учетную запись и профиль компании
func CreateCompany(t *testing.T, db *gorm.DB, email, name string) *models.Company {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x", UserType: models.UserTypeCompany}
	require.NoError(t, db.Create(user).Error)

	company := &models.Company{
		BaseModel:   models.BaseModel{ID: user.ID},
		Email:       email,
		CompanyName: name,
		UserType:    models.UserTypeCompany,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

// CreateSeeker создает учетную запись и профиль соискателя
func CreateSeeker(t *testing.T, db *gorm.DB, email, fullName string) *models.JobSeeker {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x", UserType: models.UserTypeSeeker}
	require.NoError(t, db.Create(user).Error)

	seeker := &models.JobSeeker{
		BaseModel: models.BaseModel{ID: user.ID},
		Email:     email,
		FullName:  fullName,
		UserType:  models.UserTypeSeeker,
	}
	require.NoError(t, db.Create(seeker).Error)
	return seeker
}

// CreateJob создает вакансию компании с заданным статусом
func CreateJob(t *testing.T, db *gorm.DB, companyID, title string, status models.JobStatus) *models.Job {
	t.Helper()

	job := &models.Job{
		CompanyID:   companyID,
		Title:       title,
		Description: "Description of " + title,
		Location:    "Almaty",
		JobType:     models.JobTypeFullTime,
		Status:      status,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// CreateApplication создает отклик с заданными статусом и временем создания
func CreateApplication(t *testing.T, db *gorm.DB, job *models.Job, seekerID string, status models.ApplicationStatus, createdAt time.Time) *models.Application {
	t.Helper()

	app := &models.Application{
		BaseModel: models.BaseModel{CreatedAt: createdAt, UpdatedAt: createdAt},
		JobID:     job.ID,
		SeekerID:  seekerID,
		CompanyID: job.CompanyID,
		Status:    status,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

// CreateSavedJob создает закладку соискателя
func CreateSavedJob(t *testing.T, db *gorm.DB, jobID, seekerID string) *models.SavedJob {
	t.Helper()

	saved := &models.SavedJob{JobID: jobID, SeekerID: seekerID, CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(saved).Error)
	return saved
}

// Count - число строк в таблице модели
func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
