package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seekerApplicationBody struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
	CanWithdraw bool   `json:"can_withdraw"`
}

func TestSeekerProfile_ResumeUploadAndServe(t *testing.T) {
	ts := testutil.NewTestServer(t)
	seeker := ts.RegisterSeeker(t, "Dana")

	res, body := ts.SendMultipart(t, http.MethodPut, "/api/v1/seeker/profile", seeker.AccessToken,
		map[string]string{"full_name": "Dana K.", "headline": "Go developer"},
		"resume", "cv.pdf", testutil.PDFContent)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Profile struct {
			FullName  string `json:"full_name"`
			Headline  string `json:"headline"`
			ResumeURL string `json:"resume_url"`
		} `json:"profile"`
	}
	testutil.Decode(t, body, &resp)
	assert.Equal(t, "Dana K.", resp.Profile.FullName)
	assert.Equal(t, "Go developer", resp.Profile.Headline)
	require.True(t, strings.HasPrefix(resp.Profile.ResumeURL, "/api/v1/files/resumes/"), resp.Profile.ResumeURL)

	res, body = ts.SendRequest(t, http.MethodGet, resp.Profile.ResumeURL, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.Equal(t, string(testutil.PDFContent), body)

	res, _ = ts.SendRequest(t, http.MethodHead, resp.Profile.ResumeURL, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodHead, "/api/v1/files/resumes/missing.pdf", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// профиль без файла не сбрасывает резюме
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/seeker/profile", seeker.AccessToken, map[string]string{
		"full_name": "Dana Kim",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, resp.Profile.ResumeURL)
}

func TestSeekerProfile_RejectsWrongResumeType(t *testing.T) {
	ts := testutil.NewTestServer(t)
	seeker := ts.RegisterSeeker(t, "Dana")

	res, _ := ts.SendMultipart(t, http.MethodPut, "/api/v1/seeker/profile", seeker.AccessToken,
		map[string]string{"full_name": "Dana"},
		"resume", "cv.pdf", testutil.PNGContent)
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)

	var stored models.JobSeeker
	require.NoError(t, ts.DB.First(&stored, "id = ?", seeker.ID).Error)
	assert.Empty(t, stored.ResumeURL)
}

func TestSeekerProfile_BodyOverLimit(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.Upload.MaxSize = 1024
	ts := testutil.NewTestServerWithConfig(t, cfg)
	seeker := ts.RegisterSeeker(t, "Dana")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("full_name", "Dana"))
	part, err := w.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write(append(append([]byte{}, testutil.PDFContent...), bytes.Repeat([]byte("0"), 2<<20)...))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/seeker/profile", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+seeker.AccessToken)
	rec := httptest.NewRecorder()
	ts.Server.Config.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())

	var stored models.JobSeeker
	require.NoError(t, ts.DB.First(&stored, "id = ?", seeker.ID).Error)
	assert.Empty(t, stored.ResumeURL)
}

func TestSeekerApplications_Flow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	company := ts.RegisterCompany(t, "Acme")
	seeker := ts.RegisterSeeker(t, "Dana")
	job := createJobViaAPI(t, ts, company.AccessToken, "Go Developer")

	// --- Отклик ---
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/applications", seeker.AccessToken, map[string]string{
		"job_id":       job.ID,
		"cover_letter": "  Hello  ",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var created seekerApplicationBody
	testutil.Decode(t, body, &created)
	assert.Equal(t, "pending", created.Status)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/applications", seeker.AccessToken, map[string]string{"job_id": job.ID})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// регистрация шлет приветствия, отклик - письмо компании
	assert.Eventually(t, func() bool {
		for _, m := range ts.Mail.Sent() {
			if len(m.To) == 1 && m.To[0] == company.Email && strings.Contains(m.Subject, "Go Developer") {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	// --- Список ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seeker/applications", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list struct {
		Applications []seekerApplicationBody `json:"applications"`
		Total        int                     `json:"total"`
	}
	testutil.Decode(t, body, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Go Developer", list.Applications[0].JobTitle)
	assert.Equal(t, "Acme", list.Applications[0].CompanyName)
	assert.True(t, list.Applications[0].CanWithdraw)

	// --- Дашборд ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seeker/dashboard", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"applications":1`)
	assert.Contains(t, body, `"saved_jobs":0`)

	// --- Отзыв ---
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/seeker/applications/"+created.ID, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusPreconditionRequired, res.StatusCode)

	other := ts.RegisterSeeker(t, "Other")
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/seeker/applications/"+created.ID+"?confirm=true", other.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/seeker/applications/"+created.ID+"?confirm=true", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Application withdrawn")
	assert.Equal(t, int64(0), testutil.Count(t, ts.DB, &models.Application{}))
}

func TestSeekerApplications_CannotWithdrawAccepted(t *testing.T) {
	ts := testutil.NewTestServer(t)
	company := ts.RegisterCompany(t, "Acme")
	seeker := ts.RegisterSeeker(t, "Dana")
	job := createJobViaAPI(t, ts, company.AccessToken, "Go Developer")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/applications", seeker.AccessToken, map[string]string{"job_id": job.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var created seekerApplicationBody
	testutil.Decode(t, body, &created)

	res, _ = ts.SendRequest(t, http.MethodPatch, "/api/v1/company/applications/"+created.ID+"/status", company.AccessToken, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seeker/applications", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"can_withdraw":false`)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/seeker/applications/"+created.ID+"?confirm=true", seeker.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, int64(1), testutil.Count(t, ts.DB, &models.Application{}))
}

func TestSeekerApplications_InactiveJob(t *testing.T) {
	ts := testutil.NewTestServer(t)
	company := ts.RegisterCompany(t, "Acme")
	seeker := ts.RegisterSeeker(t, "Dana")
	job := createJobViaAPI(t, ts, company.AccessToken, "Go Developer")

	res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/company/jobs/"+job.ID, company.AccessToken, map[string]string{"status": "inactive"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/applications", seeker.AccessToken, map[string]string{"job_id": job.ID})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/applications", seeker.AccessToken, map[string]string{"job_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSeekerSavedJobs(t *testing.T) {
	ts := testutil.NewTestServer(t)
	company := ts.RegisterCompany(t, "Acme")
	seeker := ts.RegisterSeeker(t, "Dana")
	job := createJobViaAPI(t, ts, company.AccessToken, "Go Developer")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/saved-jobs", seeker.AccessToken, map[string]string{"job_id": job.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var saved struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	testutil.Decode(t, body, &saved)
	assert.Equal(t, "Go Developer", saved.Title)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/seeker/saved-jobs", seeker.AccessToken, map[string]string{"job_id": job.ID})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seeker/saved-jobs", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"total":1`)
	assert.Contains(t, body, `"company_name":"Acme"`)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/seeker/saved-jobs/"+saved.ID, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/seeker/saved-jobs/"+saved.ID, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSeekerRoutes_CompanyForbidden(t *testing.T) {
	ts := testutil.NewTestServer(t)
	company := ts.RegisterCompany(t, "Acme")

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/seeker/saved-jobs", company.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
