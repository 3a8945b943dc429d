package services

import (
	"context"
	"errors"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DefaultRefreshTTL - срок жизни refresh-токена
const DefaultRefreshTTL = 7 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	LogoutAll(ctx context.Context, db *gorm.DB, userID string) error
	Session(db *gorm.DB, userID string) (*dto.SessionResponse, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenManager
	notifier         *email.Notifier
	refreshTTL       time.Duration
	now              func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenManager,
	notifier *email.Notifier,
	refreshTTL time.Duration,
) *AuthServiceImpl {
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &AuthServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		notifier:         notifier,
		refreshTTL:       refreshTTL,
		now:              time.Now,
	}
}

// SetClock подменяет часы (тесты)
func (s *AuthServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// Register - регистрация: учетная запись и профиль создаются в одной транзакции
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// До любых обращений к БД
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if !req.UserType.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"user_type": "Must be 'seeker' or 'company'"})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	now := s.now().UTC()
	user := &models.User{
		BaseModel:    models.BaseModel{CreatedAt: now, UpdatedAt: now},
		Email:        req.Email,
		PasswordHash: hash,
		UserType:     req.UserType,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	displayName, err := s.createProfile(tx, user, req, now)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "user_type", user.UserType)
	s.sendWelcome(ctx, user.Email, displayName, user.UserType)

	return resp, nil
}

// createProfile создает строку в companies или job_seekers с id учетной записи
func (s *AuthServiceImpl) createProfile(tx *gorm.DB, user *models.User, req *dto.RegisterRequest, now time.Time) (string, error) {
	base := models.BaseModel{ID: user.ID, CreatedAt: now, UpdatedAt: now}

	var err error
	var name string
	switch user.UserType {
	case models.UserTypeCompany:
		name = req.CompanyName
		err = s.profileRepo.CreateCompany(tx, &models.Company{
			BaseModel:   base,
			Email:       user.Email,
			CompanyName: req.CompanyName,
			UserType:    models.UserTypeCompany,
		})
	default:
		name = req.FullName
		err = s.profileRepo.CreateSeeker(tx, &models.JobSeeker{
			BaseModel: base,
			Email:     user.Email,
			FullName:  req.FullName,
			UserType:  models.UserTypeSeeker,
		})
	}
	if err != nil {
		if errors.Is(err, repositories.ErrProfileAlreadyExists) {
			return "", apperrors.ErrEmailAlreadyExists
		}
		return "", apperrors.DatabaseError(err)
	}
	return name, nil
}

// Login - вход по email и паролю.
// Тип аккаунта берется из БД; выбранный на форме тип только логируется при расхождении.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if req.UserType != "" && req.UserType != user.UserType {
		logger.CtxWarn(ctx, "Login user type differs from account type",
			"user_id", user.ID,
			"requested", req.UserType,
			"stored", user.UserType,
		)
	}

	return s.issueTokens(db, user)
}

// Refresh - ротация refresh-токена и новый access-токен
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	token, err := s.refreshTokenRepo.FindByToken(tx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.DatabaseError(err)
	}

	if err := s.refreshTokenRepo.DeleteByToken(tx, refreshToken); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if !s.now().Before(token.ExpiresAt) {
		// Просроченный токен удаляем и отвечаем как на неверный
		if err := tx.Commit().Error; err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(tx, token.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.DatabaseError(err)
	}

	resp, err := s.issueTokens(tx, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return resp, nil
}

// Logout удаляет refresh-токен. Повторный logout - не ошибка.
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	err := s.refreshTokenRepo.DeleteByToken(db, refreshToken)
	if err != nil && !errors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// LogoutAll отзывает все refresh-токены учетной записи (выход на всех устройствах)
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, db *gorm.DB, userID string) error {
	if err := s.refreshTokenRepo.DeleteByUserID(db, userID); err != nil {
		logger.CtxWithError(ctx, "Failed to revoke refresh tokens", err)
		return apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "All sessions revoked")
	return nil
}

// Session - данные учетной записи по id из access-токена
func (s *AuthServiceImpl) Session(db *gorm.DB, userID string) (*dto.SessionResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.SessionResponse{
		User:          dto.NewUserResponse(user),
		DashboardPath: user.UserType.DashboardPath(),
	}, nil
}

// =======================
// Вспомогательные методы
// =======================

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateToken(user.ID, string(user.UserType), user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.refreshTokenRepo.Create(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: s.now().UTC().Add(s.refreshTTL),
	}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.AuthResponse{
		AccessToken:   accessToken,
		RefreshToken:  refresh,
		TokenType:     "Bearer",
		ExpiresIn:     int64(s.tokens.TTL().Seconds()),
		User:          dto.NewUserResponse(user),
		DashboardPath: user.UserType.DashboardPath(),
	}, nil
}

func (s *AuthServiceImpl) sendWelcome(ctx context.Context, to, name string, userType models.UserType) {
	if s.notifier == nil {
		return
	}
	requestID := logger.GetRequestID(ctx)
	go func() {
		if err := s.notifier.SendWelcome(to, name, string(userType)); err != nil {
			logger.Warn("Failed to send welcome email", "error", err, "to", to, "request_id", requestID)
		}
	}()
}
