package services_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader собирает *multipart.FileHeader так же, как это делает net/http
func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))

	_, header, err := req.FormFile(field)
	require.NoError(t, err)
	return header
}

func TestUpdateSeekerProfile_ResumeUpload(t *testing.T) {
	env := newTestEnv(t)
	seeker := testutil.CreateSeeker(t, env.db, "seeker@test.com", "Dana")
	ctx := context.Background()

	resume := fileHeader(t, "resume", "cv.pdf", testutil.PDFContent)
	resp, err := env.profiles.UpdateSeekerProfile(ctx, env.db, seeker.ID, &dto.UpdateSeekerProfileRequest{
		FullName: "  Dana K. ",
		Headline: "Backend developer",
		Location: "Astana",
	}, resume)
	require.NoError(t, err)

	assert.Equal(t, "Profile updated successfully", resp.Message)
	assert.Equal(t, "Dana K.", resp.Profile.FullName)
	assert.Equal(t, "Backend developer", resp.Profile.Headline)
	require.NotEmpty(t, resp.Profile.ResumeURL)
	assert.True(t, strings.HasPrefix(resp.Profile.ResumeURL, "/api/v1/files/resumes/"+seeker.ID+"-"))
	assert.True(t, strings.HasSuffix(resp.Profile.ResumeURL, ".pdf"))

	key := strings.TrimPrefix(resp.Profile.ResumeURL, "/api/v1/files/")
	reader, err := env.storage.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()
	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, testutil.PDFContent, stored)

	// без файла resume_url не меняется
	resp2, err := env.profiles.UpdateSeekerProfile(ctx, env.db, seeker.ID, &dto.UpdateSeekerProfileRequest{FullName: "Dana"}, nil)
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ResumeURL, resp2.Profile.ResumeURL)
	assert.Empty(t, resp2.Profile.Headline)
}

func TestUpdateSeekerProfile_RejectsWrongFileType(t *testing.T) {
	env := newTestEnv(t)
	seeker := testutil.CreateSeeker(t, env.db, "seeker@test.com", "Dana")

	// .pdf по имени, но содержимое - PNG
	resume := fileHeader(t, "resume", "cv.pdf", testutil.PNGContent)
	_, err := env.profiles.UpdateSeekerProfile(context.Background(), env.db, seeker.ID, &dto.UpdateSeekerProfileRequest{FullName: "Dana"}, resume)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInvalidFileType.Code, appErr.Code)
	assert.Equal(t, http.StatusUnsupportedMediaType, appErr.HTTPCode)

	seekerAfter, err := env.profiles.ResolveSeeker(context.Background(), env.db, seeker.ID)
	require.NoError(t, err)
	assert.Empty(t, seekerAfter.ResumeURL)
}

func TestUpdateCompanyProfile_LogoAndSanitize(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	logo := fileHeader(t, "logo", "logo.png", testutil.PNGContent)
	resp, err := env.profiles.UpdateCompanyProfile(context.Background(), env.db, company.ID, &dto.UpdateCompanyProfileRequest{
		CompanyName: "Acme Corp",
		Description: `<b>We build</b><script>x()</script>`,
		Website:     "https://acme.example",
		Industry:    "Software",
	}, logo)
	require.NoError(t, err)

	assert.Equal(t, "Company profile updated successfully", resp.Message)
	assert.Equal(t, "Acme Corp", resp.Profile.CompanyName)
	assert.Equal(t, "<b>We build</b>", resp.Profile.Description)
	assert.Equal(t, "Software", resp.Profile.Industry)
	assert.True(t, strings.HasPrefix(resp.Profile.LogoURL, "/api/v1/files/logos/"+company.ID+"-"))
	assert.True(t, strings.HasSuffix(resp.Profile.LogoURL, ".png"))
}

func TestUpdateProfile_WrongAccountType(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	_, err := env.profiles.UpdateSeekerProfile(context.Background(), env.db, company.ID, &dto.UpdateSeekerProfileRequest{FullName: "X"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestUpload_TooLarge(t *testing.T) {
	env := newTestEnv(t)
	upload := services.NewUploadService(env.storage, &services.UploadConfig{
		MaxFileSize: 16,
		AllowedTypes: map[services.UploadKind][]string{
			services.UploadKindResume: {"application/pdf"},
		},
	})

	_, err := upload.Upload(context.Background(), services.UploadKindResume, "owner", fileHeader(t, "resume", "cv.pdf", testutil.PDFContent))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.HTTPCode)
}
