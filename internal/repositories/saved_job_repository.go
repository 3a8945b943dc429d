package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSavedJobNotFound = errors.New("saved job not found")
	ErrSavedJobExists   = errors.New("job already saved")
)

type SavedJobRepository interface {
	Create(db *gorm.DB, saved *models.SavedJob) error
	FindByID(db *gorm.DB, id string) (*models.SavedJob, error)
	ListBySeeker(db *gorm.DB, seekerID string) ([]models.SavedJob, error)
	CountBySeeker(db *gorm.DB, seekerID string) (int64, error)
	Delete(db *gorm.DB, id string) error
	DeleteByJobID(db *gorm.DB, jobID string) error
}

type savedJobRepository struct{}

func NewSavedJobRepository() SavedJobRepository {
	return &savedJobRepository{}
}

func (r *savedJobRepository) Create(db *gorm.DB, saved *models.SavedJob) error {
	if err := db.Create(saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSavedJobExists
		}
		return err
	}
	return nil
}

func (r *savedJobRepository) FindByID(db *gorm.DB, id string) (*models.SavedJob, error) {
	var saved models.SavedJob
	if err := db.First(&saved, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavedJobNotFound
		}
		return nil, err
	}
	return &saved, nil
}

func (r *savedJobRepository) ListBySeeker(db *gorm.DB, seekerID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := db.
		Preload("Job", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title", "location", "job_type", "company_id", "status", "created_at")
		}).
		Preload("Job.Company", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "company_name", "logo_url")
		}).
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

func (r *savedJobRepository) CountBySeeker(db *gorm.DB, seekerID string) (int64, error) {
	var count int64
	err := db.Model(&models.SavedJob{}).Where("seeker_id = ?", seekerID).Count(&count).Error
	return count, err
}

func (r *savedJobRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.SavedJob{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}

func (r *savedJobRepository) DeleteByJobID(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.SavedJob{}).Error
}
