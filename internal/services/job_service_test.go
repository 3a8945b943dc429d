package services_test

import (
	"context"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobRequest(title string) *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       title,
		Description: "<p>Build APIs</p>",
		Location:    "Remote",
		JobType:     models.JobTypeFullTime,
		SalaryMin:   int64Ptr(50000),
		SalaryMax:   int64Ptr(80000),
	}
}

func TestCreateJob_Defaults(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.SetClock(func() time.Time { return fixedNow })
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	changes := 0
	env.jobs.OnChange(func() { changes++ })

	job, err := env.jobs.CreateJob(context.Background(), env.db, company.ID, newJobRequest("  Go Developer "))
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, company.ID, job.CompanyID)
	assert.Equal(t, "Go Developer", job.Title)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, "USD", job.SalaryCurrency)
	assert.True(t, job.CreatedAt.Equal(fixedNow))
	assert.Equal(t, 1, changes)
}

func TestCreateJob_SanitizesDescription(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	req := newJobRequest("Go Developer")
	req.Description = `<p onclick="steal()">Hello</p><script>alert(1)</script>`
	req.Requirements = "<ul><li>Go</li></ul><iframe src=x></iframe>"

	job, err := env.jobs.CreateJob(context.Background(), env.db, company.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "<p>Hello</p>", job.Description)
	assert.Equal(t, "<ul><li>Go</li></ul>", job.Requirements)
}

func TestCreateJob_InvalidSalaryRange(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	req := newJobRequest("Go Developer")
	req.SalaryMin = int64Ptr(90000)
	req.SalaryMax = int64Ptr(10000)

	_, err := env.jobs.CreateJob(context.Background(), env.db, company.ID, req)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Equal(t, int64(0), testutil.Count(t, env.db, &models.Job{}))
}

func TestCreateJob_DescriptionEmptyAfterSanitize(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	req := newJobRequest("Go Developer")
	req.Description = "<script>alert(1)</script>"

	_, err := env.jobs.CreateJob(context.Background(), env.db, company.ID, req)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Contains(t, appErr.Details, "description")
	assert.Equal(t, int64(0), testutil.Count(t, env.db, &models.Job{}))
}

func TestListCompanyJobs_OnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	acme := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	other := testutil.CreateCompany(t, env.db, "other@test.com", "Other")

	testutil.CreateJob(t, env.db, acme.ID, "A1", models.JobStatusActive)
	testutil.CreateJob(t, env.db, acme.ID, "A2", models.JobStatusInactive)
	testutil.CreateJob(t, env.db, other.ID, "O1", models.JobStatusActive)

	jobs, err := env.jobs.ListCompanyJobs(context.Background(), env.db, acme.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, j := range jobs {
		assert.Equal(t, acme.ID, j.CompanyID)
	}
}

func TestUpdateJob_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	job := testutil.CreateJob(t, env.db, company.ID, "Go Developer", models.JobStatusActive)

	inactive := models.JobStatusInactive
	updated, err := env.jobs.UpdateJob(context.Background(), env.db, company.ID, job.ID, &dto.UpdateJobRequest{
		Title:  strPtr("Senior Go Developer"),
		Status: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Developer", updated.Title)
	assert.Equal(t, models.JobStatusInactive, updated.Status)
	assert.Equal(t, job.Location, updated.Location)
	assert.Equal(t, job.Description, updated.Description)
}

func TestUpdateJob_DescriptionEmptyAfterSanitize(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	job := testutil.CreateJob(t, env.db, company.ID, "Go Developer", models.JobStatusActive)

	_, err := env.jobs.UpdateJob(context.Background(), env.db, company.ID, job.ID, &dto.UpdateJobRequest{
		Description: strPtr("  <iframe src=x></iframe>  "),
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	var stored models.Job
	require.NoError(t, env.db.First(&stored, "id = ?", job.ID).Error)
	assert.Equal(t, job.Description, stored.Description)
}

func TestUpdateJob_SalaryRangeCheckedAgainstStored(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	job, err := env.jobs.CreateJob(context.Background(), env.db, company.ID, newJobRequest("Go Developer"))
	require.NoError(t, err)

	// salary_max в базе 80000
	_, err = env.jobs.UpdateJob(context.Background(), env.db, company.ID, job.ID, &dto.UpdateJobRequest{
		SalaryMin: int64Ptr(100000),
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpdateJob_NotOwned(t *testing.T) {
	env := newTestEnv(t)
	acme := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	other := testutil.CreateCompany(t, env.db, "other@test.com", "Other")
	job := testutil.CreateJob(t, env.db, acme.ID, "Go Developer", models.JobStatusActive)

	_, err := env.jobs.UpdateJob(context.Background(), env.db, other.ID, job.ID, &dto.UpdateJobRequest{Title: strPtr("Hacked")})
	assert.ErrorIs(t, err, apperrors.ErrJobNotOwned)

	_, err = env.jobs.GetCompanyJob(env.db, other.ID, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotOwned)
}

func TestDeleteJob_RequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	job := testutil.CreateJob(t, env.db, company.ID, "Go Developer", models.JobStatusActive)

	err := env.jobs.DeleteJob(context.Background(), env.db, company.ID, job.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
	assert.Equal(t, int64(1), testutil.Count(t, env.db, &models.Job{}))
}

func TestDeleteJob_RemovesOnlyThatJob(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	seeker := testutil.CreateSeeker(t, env.db, "seeker@test.com", "Dana")

	target := testutil.CreateJob(t, env.db, company.ID, "Target", models.JobStatusActive)
	keep := testutil.CreateJob(t, env.db, company.ID, "Keep", models.JobStatusActive)

	testutil.CreateApplication(t, env.db, target, seeker.ID, models.ApplicationStatusPending, fixedNow)
	testutil.CreateApplication(t, env.db, keep, seeker.ID, models.ApplicationStatusPending, fixedNow)
	testutil.CreateSavedJob(t, env.db, target.ID, seeker.ID)
	testutil.CreateSavedJob(t, env.db, keep.ID, seeker.ID)

	changes := 0
	env.jobs.OnChange(func() { changes++ })

	require.NoError(t, env.jobs.DeleteJob(context.Background(), env.db, company.ID, target.ID, true))

	jobs, err := env.jobs.ListCompanyJobs(context.Background(), env.db, company.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, keep.ID, jobs[0].ID)

	assert.Equal(t, int64(1), testutil.Count(t, env.db, &models.Application{}))
	assert.Equal(t, int64(1), testutil.Count(t, env.db, &models.SavedJob{}))
	assert.Equal(t, 1, changes)

	err = env.jobs.DeleteJob(context.Background(), env.db, company.ID, target.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestDeleteJob_NotOwned(t *testing.T) {
	env := newTestEnv(t)
	acme := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	other := testutil.CreateCompany(t, env.db, "other@test.com", "Other")
	job := testutil.CreateJob(t, env.db, acme.ID, "Go Developer", models.JobStatusActive)

	err := env.jobs.DeleteJob(context.Background(), env.db, other.ID, job.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrJobNotOwned)
	assert.Equal(t, int64(1), testutil.Count(t, env.db, &models.Job{}))
}
