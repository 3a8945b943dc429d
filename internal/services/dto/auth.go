package dto

import (
	"jobportal_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email           string          `json:"email" validate:"required,email,max=254"`
	Password        string          `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string          `json:"confirm_password" validate:"required"`
	UserType        models.UserType `json:"user_type" validate:"required,is-user-type"`

	// Поля для соискателя
	FullName string `json:"full_name,omitempty" validate:"required_if=UserType seeker,max=120"`

	// Поля для компании
	CompanyName string `json:"company_name,omitempty" validate:"required_if=UserType company,max=160"`
}

// LoginRequest - запрос входа. UserType - то, что выбрано на форме, опционально.
type LoginRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	UserType models.UserType `json:"user_type,omitempty" validate:"omitempty,is-user-type"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse - учетная запись без пароля
type UserResponse struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"user_type"`
}

// AuthResponse - ответ с токенами
type AuthResponse struct {
	AccessToken   string       `json:"access_token"`
	RefreshToken  string       `json:"refresh_token"`
	TokenType     string       `json:"token_type"`
	ExpiresIn     int64        `json:"expires_in"`
	User          UserResponse `json:"user"`
	DashboardPath string       `json:"dashboard_path"`
}

// SessionResponse - текущая сессия по access-токену
type SessionResponse struct {
	User          UserResponse `json:"user"`
	DashboardPath string       `json:"dashboard_path"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		UserType: u.UserType,
	}
}
