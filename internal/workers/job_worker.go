package workers

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/repositories"

	"gorm.io/gorm"
)

const jobWorkerName = "job_worker"

// JobWorker снимает с публикации истекшие вакансии и чистит просроченные refresh-токены
type JobWorker struct {
	db               *gorm.DB
	jobRepo          repositories.JobRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
	now              func() time.Time
	onDeactivated    func()
}

func NewJobWorker(
	db *gorm.DB,
	jobRepo repositories.JobRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	interval time.Duration,
) *JobWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JobWorker{
		db:               db,
		jobRepo:          jobRepo,
		refreshTokenRepo: refreshTokenRepo,
		interval:         interval,
		now:              time.Now,
	}
}

func (w *JobWorker) SetClock(now func() time.Time) {
	w.now = now
}

// OnDeactivated - вызывается, если хотя бы одна вакансия снята с публикации
func (w *JobWorker) OnDeactivated(fn func()) {
	w.onDeactivated = fn
}

// Start запускает цикл в отдельной горутине до отмены ctx
func (w *JobWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *JobWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Job worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход: вакансии, затем токены
func (w *JobWorker) RunOnce(ctx context.Context) {
	db := w.db.WithContext(ctx)
	now := w.now().UTC()

	deactivated, err := w.jobRepo.DeactivateExpired(db, now)
	logger.WorkerLog(jobWorkerName, "deactivate_expired_jobs", deactivated, err)
	if err == nil && deactivated > 0 && w.onDeactivated != nil {
		w.onDeactivated()
	}

	removed, err := w.refreshTokenRepo.DeleteExpired(db, now)
	logger.WorkerLog(jobWorkerName, "delete_expired_refresh_tokens", removed, err)
}
