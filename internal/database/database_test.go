package database

import (
	"path/filepath"
	"testing"

	"jobportal_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)"},
		{"app.db?_pragma=busy_timeout(5000)", "app.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{"app.db?_pragma=foreign_keys(1)", "app.db?_pragma=foreign_keys(1)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SQLiteDSN(tt.in), tt.in)
	}
}

func TestOpen_SQLiteForeignKeysOnEveryConnection(t *testing.T) {
	db, err := Open(Options{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "jobs.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	// без простаивающих соединений каждый запрос идет через новое соединение
	sqlDB.SetMaxIdleConns(0)

	for i := 0; i < 2; i++ {
		var enabled int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
		assert.Equal(t, 1, enabled)
	}

	err = db.Create(&models.Job{
		CompanyID:   "00000000-0000-0000-0000-000000000000",
		Title:       "Orphan",
		Description: "No company",
		Location:    "Almaty",
		JobType:     models.JobTypeFullTime,
		Status:      models.JobStatusActive,
	}).Error
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
