package models

// Company - профиль компании (таблица companies)
type Company struct {
	BaseModel
	Email       string   `gorm:"not null" json:"email"`
	CompanyName string   `gorm:"not null" json:"company_name"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Location    string   `json:"location,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	LogoURL     string   `json:"logo_url,omitempty"`
	UserType    UserType `gorm:"type:varchar(20);not null;default:'company'" json:"user_type"`

	Jobs []Job `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

// JobSeeker - профиль соискателя (таблица job_seekers)
type JobSeeker struct {
	BaseModel
	Email     string   `gorm:"not null" json:"email"`
	FullName  string   `gorm:"not null" json:"full_name"`
	Headline  string   `json:"headline,omitempty"`
	About     string   `json:"about,omitempty"`
	Location  string   `json:"location,omitempty"`
	ResumeURL string   `json:"resume_url,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	UserType  UserType `gorm:"type:varchar(20);not null;default:'seeker'" json:"user_type"`
}
