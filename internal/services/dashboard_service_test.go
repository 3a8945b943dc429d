package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyDashboard_Counts(t *testing.T) {
	env := newTestEnv(t)
	env.dashboard.SetClock(func() time.Time { return fixedNow })

	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	other := testutil.CreateCompany(t, env.db, "other@test.com", "Other")

	backend := testutil.CreateJob(t, env.db, company.ID, "Go Developer", models.JobStatusActive)
	testutil.CreateJob(t, env.db, company.ID, "QA Engineer", models.JobStatusActive)
	testutil.CreateJob(t, env.db, company.ID, "Designer", models.JobStatusInactive)
	otherJob := testutil.CreateJob(t, env.db, other.ID, "Accountant", models.JobStatusActive)

	ages := []time.Duration{
		time.Hour,
		7 * 24 * time.Hour, // ровно на границе окна
		7*24*time.Hour + time.Minute,
		10 * 24 * time.Hour,
		30 * 24 * time.Hour,
	}
	for i, age := range ages {
		seeker := testutil.CreateSeeker(t, env.db, fmt.Sprintf("s%d@test.com", i), fmt.Sprintf("Seeker %d", i))
		testutil.CreateApplication(t, env.db, backend, seeker.ID, models.ApplicationStatusPending, fixedNow.Add(-age))
	}

	// Чужие отклики в счетчики не попадают
	outsider := testutil.CreateSeeker(t, env.db, "outsider@test.com", "Outsider")
	testutil.CreateApplication(t, env.db, otherJob, outsider.ID, models.ApplicationStatusPending, fixedNow)

	resp, err := env.dashboard.CompanyDashboard(context.Background(), env.db, company.ID)
	require.NoError(t, err)

	assert.Equal(t, company.ID, resp.Company.ID)
	assert.Equal(t, 3, resp.Stats.JobCounts.Total)
	assert.Equal(t, 2, resp.Stats.JobCounts.Active)
	assert.Equal(t, 5, resp.Stats.ApplicationCounts.Total)
	assert.Equal(t, 2, resp.Stats.ApplicationCounts.NewThisWeek)
}

func TestCompanyDashboard_Empty(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "empty@test.com", "Empty Inc")

	resp, err := env.dashboard.CompanyDashboard(context.Background(), env.db, company.ID)
	require.NoError(t, err)

	assert.Zero(t, resp.Stats.JobCounts.Total)
	assert.Zero(t, resp.Stats.JobCounts.Active)
	assert.Zero(t, resp.Stats.ApplicationCounts.Total)
	assert.Zero(t, resp.Stats.ApplicationCounts.NewThisWeek)
}

func TestCompanyDashboard_UnknownProfile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.dashboard.CompanyDashboard(context.Background(), env.db, "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestSeekerDashboard_Counts(t *testing.T) {
	env := newTestEnv(t)

	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")
	seeker := testutil.CreateSeeker(t, env.db, "seeker@test.com", "Dana")

	jobs := []*models.Job{
		testutil.CreateJob(t, env.db, company.ID, "Job A", models.JobStatusActive),
		testutil.CreateJob(t, env.db, company.ID, "Job B", models.JobStatusActive),
		testutil.CreateJob(t, env.db, company.ID, "Job C", models.JobStatusActive),
	}
	testutil.CreateApplication(t, env.db, jobs[0], seeker.ID, models.ApplicationStatusPending, fixedNow)
	testutil.CreateApplication(t, env.db, jobs[1], seeker.ID, models.ApplicationStatusAccepted, fixedNow)
	for _, job := range jobs {
		testutil.CreateSavedJob(t, env.db, job.ID, seeker.ID)
	}

	resp, err := env.dashboard.SeekerDashboard(context.Background(), env.db, seeker.ID)
	require.NoError(t, err)

	assert.Equal(t, "Dana", resp.Seeker.FullName)
	assert.Equal(t, 2, resp.Stats.Applications)
	assert.Equal(t, 3, resp.Stats.SavedJobs)
}

func TestSeekerDashboard_CompanyIDIsNotASeeker(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.CreateCompany(t, env.db, "acme@test.com", "Acme")

	_, err := env.dashboard.SeekerDashboard(context.Background(), env.db, company.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
