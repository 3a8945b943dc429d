package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)

	// ListByCompany - отклики на вакансии компании с названием вакансии и именем/email соискателя
	ListByCompany(db *gorm.DB, companyID string) ([]models.Application, error)

	// ListBySeeker - отклики соискателя с вакансией и компанией
	ListBySeeker(db *gorm.DB, seekerID string) ([]models.Application, error)

	// ListForStats - только id, status, created_at для счетчиков дашборда
	ListForStats(db *gorm.DB, companyID string) ([]models.Application, error)

	CountBySeeker(db *gorm.DB, seekerID string) (int64, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, now time.Time) error
	Delete(db *gorm.DB, id string) error
	DeleteByJobID(db *gorm.DB, jobID string) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.Preload("Job").Preload("Seeker").First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByCompany(db *gorm.DB, companyID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.
		Preload("Job", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title", "company_id")
		}).
		Preload("Seeker", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "full_name", "email")
		}).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListBySeeker(db *gorm.DB, seekerID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.
		Preload("Job").
		Preload("Job.Company", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "company_name", "logo_url")
		}).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListForStats(db *gorm.DB, companyID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Select("id", "status", "created_at").
		Where("company_id = ?", companyID).
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) CountBySeeker(db *gorm.DB, seekerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("seeker_id = ?", seekerID).Count(&count).Error
	return count, err
}

func (r *applicationRepository) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, now time.Time) error {
	result := db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) DeleteByJobID(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.Application{}).Error
}
