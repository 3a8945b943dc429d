package workers_test

import (
	"context"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/internal/workers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newWorker(t *testing.T) (*workers.JobWorker, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	w := workers.NewJobWorker(db, repositories.NewJobRepository(), repositories.NewRefreshTokenRepository(), time.Minute)
	w.SetClock(func() time.Time { return now })
	return w, db
}

func TestRunOnce_DeactivatesExpiredJobs(t *testing.T) {
	w, db := newWorker(t)
	company := testutil.CreateCompany(t, db, "acme@test.com", "Acme")

	expired := testutil.CreateJob(t, db, company.ID, "Expired", models.JobStatusActive)
	fresh := testutil.CreateJob(t, db, company.ID, "Fresh", models.JobStatusActive)
	noDeadline := testutil.CreateJob(t, db, company.ID, "No deadline", models.JobStatusActive)

	require.NoError(t, db.Model(expired).Update("expires_at", now.Add(-time.Hour)).Error)
	require.NoError(t, db.Model(fresh).Update("expires_at", now.Add(time.Hour)).Error)

	calls := 0
	w.OnDeactivated(func() { calls++ })

	w.RunOnce(context.Background())

	status := func(id string) models.JobStatus {
		var job models.Job
		require.NoError(t, db.First(&job, "id = ?", id).Error)
		return job.Status
	}
	assert.Equal(t, models.JobStatusInactive, status(expired.ID))
	assert.Equal(t, models.JobStatusActive, status(fresh.ID))
	assert.Equal(t, models.JobStatusActive, status(noDeadline.ID))
	assert.Equal(t, 1, calls)

	// повторный проход ничего не меняет и колбэк не зовет
	w.RunOnce(context.Background())
	assert.Equal(t, 1, calls)
}

func TestRunOnce_DeletesExpiredRefreshTokens(t *testing.T) {
	w, db := newWorker(t)
	company := testutil.CreateCompany(t, db, "acme@test.com", "Acme")

	require.NoError(t, db.Create(&models.RefreshToken{UserID: company.ID, Token: "old", ExpiresAt: now.Add(-time.Minute)}).Error)
	require.NoError(t, db.Create(&models.RefreshToken{UserID: company.ID, Token: "live", ExpiresAt: now.Add(time.Hour)}).Error)

	w.RunOnce(context.Background())

	var tokens []models.RefreshToken
	require.NoError(t, db.Find(&tokens).Error)
	require.Len(t, tokens, 1)
	assert.Equal(t, "live", tokens[0].Token)
}

func TestStart_StopsOnCancel(t *testing.T) {
	w, db := newWorker(t)
	company := testutil.CreateCompany(t, db, "acme@test.com", "Acme")
	job := testutil.CreateJob(t, db, company.ID, "Expired", models.JobStatusActive)
	require.NoError(t, db.Model(job).Update("expires_at", now.Add(-time.Hour)).Error)

	done := make(chan struct{}, 1)
	w.OnDeactivated(func() { done <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not run the first pass")
	}
}
