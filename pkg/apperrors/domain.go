package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки домена job board.
Репозитории возвращают свои sentinel-ошибки, сервисы переводят их в эти значения.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrStorage оборачивает ошибку объектного хранилища (502)
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "Failed to store file", http.StatusBadGateway)
}

// =========================================================================
// Auth
// =========================================================================

// ErrPasswordMismatch - пароль и подтверждение не совпадают. Проверяется до любых записей.
var ErrPasswordMismatch = New(
	CodePasswordMismatch,
	"auth",
	"Passwords do not match",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный refresh/access токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUnauthenticated - сессия валидна, но профиль не удалось загрузить.
// Клиент обрабатывает это так же, как отсутствие сессии.
var ErrUnauthenticated = New(
	CodeUnauthenticated,
	"auth",
	"Not authenticated",
	http.StatusUnauthorized,
)

var ErrWrongUserType = New(
	CodeForbidden,
	"auth",
	"This action is not available for your account type",
	http.StatusForbidden,
)

var ErrTooManyRequests = New(
	CodeTooManyRequests,
	"auth",
	"Too many requests, try again later",
	http.StatusTooManyRequests,
)

// =========================================================================
// Jobs
// =========================================================================

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrJobNotOwned = New(
	CodeForbidden,
	"job",
	"You can only manage your own jobs",
	http.StatusForbidden,
)

var ErrJobNotActive = New(
	CodeInvalidStatus,
	"job",
	"Job is not accepting applications",
	http.StatusConflict,
)

// =========================================================================
// Applications
// =========================================================================

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"application",
	"You have already applied to this job",
	http.StatusConflict,
)

// ErrCannotWithdrawAccepted - принятую заявку отозвать нельзя.
var ErrCannotWithdrawAccepted = New(
	CodeInvalidStatus,
	"application",
	"Accepted applications cannot be withdrawn",
	http.StatusConflict,
)

// =========================================================================
// Saved jobs
// =========================================================================

var ErrSavedJobNotFound = New(
	CodeNotFound,
	"saved_job",
	"Saved job not found",
	http.StatusNotFound,
)

var ErrAlreadySaved = New(
	CodeAlreadyExists,
	"saved_job",
	"Job is already saved",
	http.StatusConflict,
)

// =========================================================================
// Confirmation & Uploads
// =========================================================================

// ErrConfirmationRequired - деструктивное действие без confirm=true.
var ErrConfirmationRequired = New(
	CodeConfirmationRequired,
	"request",
	"This action requires confirmation",
	http.StatusPreconditionRequired,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
