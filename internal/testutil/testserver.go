package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jobportal_backend/internal/app"
	"jobportal_backend/internal/cache"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// PDFContent - минимальный файл, который mimetype определяет как application/pdf
var PDFContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// PNGContent - сигнатура PNG и заголовок IHDR
var PNGContent = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xDE,
}

var emailSeq atomic.Int64

// UniqueEmail - уникальный адрес для теста
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), emailSeq.Add(1))
}

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Config   *config.Config
	Services *services.ServiceContainer
	Storage  storage.Storage
	Mail     *email.MockSender
}

// TestConfig - конфиг для тестов: SQLite в памяти, локальное хранилище во временной папке
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"
	cfg.JWT.Secret = "test_secret_key_for_jobportal_tests"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/api/v1/files"
	cfg.CORS.AllowedOrigins = []string{"*"}
	// все запросы теста идут с одного IP
	cfg.RateLimit.RequestsPerMinute = 6000
	cfg.RateLimit.Burst = 1000
	return cfg
}

// NewTestServer поднимает полный роутер приложения поверх httptest
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, TestConfig(t))
}

func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", io.Discard)

	db := NewTestDB(t)

	store, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	homeCache, err := cache.New(ctx, time.Minute)
	require.NoError(t, err)

	mail := email.NewMockSender()
	router, container := app.SetupRouter(cfg, db, app.Deps{
		Storage:     store,
		EmailSender: mail,
		Cache:       homeCache,
	})

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		homeCache.Close()
		cancel()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Config:   cfg,
		Services: container,
		Storage:  store,
		Mail:     mail,
	}
}

// SendRequest отправляет JSON-запрос и возвращает ответ и тело строкой
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// SendMultipart отправляет multipart/form-data с полями и (опционально) одним файлом
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField, fileName string, content []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "ошибка чтения тела ответа")
	return res, string(resBody)
}

// Decode разбирает JSON-ответ в out
func Decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "не удалось распарсить JSON: %s", body)
}

// ============================================
// Регистрация через API
// ============================================

// Account - зарегистрированный пользователь и его токены
type Account struct {
	ID           string
	Email        string
	AccessToken  string
	RefreshToken string
}

type authBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

// RegisterCompany регистрирует компанию через /auth/register
func (ts *TestServer) RegisterCompany(t *testing.T, companyName string) *Account {
	t.Helper()
	return ts.register(t, map[string]interface{}{
		"email":            UniqueEmail("company"),
		"password":         TestPassword,
		"confirm_password": TestPassword,
		"user_type":        "company",
		"company_name":     companyName,
	})
}

// RegisterSeeker регистрирует соискателя через /auth/register
func (ts *TestServer) RegisterSeeker(t *testing.T, fullName string) *Account {
	t.Helper()
	return ts.register(t, map[string]interface{}{
		"email":            UniqueEmail("seeker"),
		"password":         TestPassword,
		"confirm_password": TestPassword,
		"user_type":        "seeker",
		"full_name":        fullName,
	})
}

func (ts *TestServer) register(t *testing.T, body map[string]interface{}) *Account {
	t.Helper()

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "регистрация должна быть успешной. Ответ: %s", resBody)

	var parsed authBody
	Decode(t, resBody, &parsed)
	require.NotEmpty(t, parsed.AccessToken)

	return &Account{
		ID:           parsed.User.ID,
		Email:        body["email"].(string),
		AccessToken:  parsed.AccessToken,
		RefreshToken: parsed.RefreshToken,
	}
}
