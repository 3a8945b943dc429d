// Package stats считает агрегаты для дашбордов.
// Функции чистые: вход - уже выбранные по владельцу строки и текущее время.
package stats

import (
	"time"

	"jobportal_backend/internal/models"
)

// NewApplicationsWindow - окно для счетчика "новых за неделю"
const NewApplicationsWindow = 7 * 24 * time.Hour

// JobCounts - счетчики вакансий компании
type JobCounts struct {
	Total  int `json:"total_jobs"`
	Active int `json:"active_jobs"`
}

// ApplicationCounts - счетчики откликов компании
type ApplicationCounts struct {
	Total       int `json:"total_applications"`
	NewThisWeek int `json:"new_applications"`
}

// SeekerCounts - счетчики соискателя
type SeekerCounts struct {
	Applications int `json:"applications"`
	SavedJobs    int `json:"saved_jobs"`
}

// CountJobs считает общее число вакансий и число активных
func CountJobs(jobs []models.Job) JobCounts {
	c := JobCounts{Total: len(jobs)}
	for i := range jobs {
		if jobs[i].Status == models.JobStatusActive {
			c.Active++
		}
	}
	return c
}

// CountApplications считает общее число откликов и число созданных
// не раньше now-7d (граница включается).
func CountApplications(apps []models.Application, now time.Time) ApplicationCounts {
	cutoff := now.Add(-NewApplicationsWindow)
	c := ApplicationCounts{Total: len(apps)}
	for i := range apps {
		if !apps[i].CreatedAt.Before(cutoff) {
			c.NewThisWeek++
		}
	}
	return c
}

// CountSeeker собирает счетчики соискателя из уже посчитанных totals
func CountSeeker(applications, savedJobs int64) SeekerCounts {
	return SeekerCounts{
		Applications: int(applications),
		SavedJobs:    int(savedJobs),
	}
}
