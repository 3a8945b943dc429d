package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

// CompanyJobCount - строка списка компаний с числом активных вакансий
type CompanyJobCount struct {
	ID          string
	CompanyName string
	Location    string
	Industry    string
	LogoURL     string
	ActiveJobs  int64
}

// ProfileRepository работает с таблицами companies и job_seekers.
// ID профиля совпадает с ID учетной записи.
type ProfileRepository interface {
	CreateCompany(db *gorm.DB, company *models.Company) error
	FindCompanyByID(db *gorm.DB, id string) (*models.Company, error)
	UpdateCompany(db *gorm.DB, id string, fields map[string]interface{}) error
	ListCompaniesWithActiveJobs(db *gorm.DB, limit int) ([]CompanyJobCount, error)

	CreateSeeker(db *gorm.DB, seeker *models.JobSeeker) error
	FindSeekerByID(db *gorm.DB, id string) (*models.JobSeeker, error)
	UpdateSeeker(db *gorm.DB, id string, fields map[string]interface{}) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

// ============================================
// Company
// ============================================

func (r *profileRepository) CreateCompany(db *gorm.DB, company *models.Company) error {
	if err := db.Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) FindCompanyByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *profileRepository) UpdateCompany(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Company{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListCompaniesWithActiveJobs(db *gorm.DB, limit int) ([]CompanyJobCount, error) {
	var rows []CompanyJobCount
	err := db.Model(&models.Company{}).
		Select("companies.id, companies.company_name, companies.location, companies.industry, companies.logo_url, COUNT(jobs.id) AS active_jobs").
		Joins("LEFT JOIN jobs ON jobs.company_id = companies.id AND jobs.status = ?", models.JobStatusActive).
		Group("companies.id, companies.company_name, companies.location, companies.industry, companies.logo_url, companies.created_at").
		Order("active_jobs DESC, companies.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ============================================
// JobSeeker
// ============================================

func (r *profileRepository) CreateSeeker(db *gorm.DB, seeker *models.JobSeeker) error {
	if err := db.Create(seeker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) FindSeekerByID(db *gorm.DB, id string) (*models.JobSeeker, error) {
	var seeker models.JobSeeker
	if err := db.First(&seeker, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &seeker, nil
}

func (r *profileRepository) UpdateSeeker(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.JobSeeker{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
