package main

import (
	"context"
	"errors"
	"testing"

	"github.com/davomat/davomat-backend-go/internal/config"
	"github.com/davomat/davomat-backend-go/internal/mocks"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMongo},
		JWT:      config.JWTConfig{Secret: "secret", AccessExpiration: "1h"},
		Attendance: config.AttendanceConfig{
			Timezone:     "UTC",
			WorkdayStart: "09:00",
			ResetCron:    "0 0 * * *",
		},
	}
}

func fakeRepositories(closed *int) func(context.Context, *config.Config) (*repositories, error) {
	return func(context.Context, *config.Config) (*repositories, error) {
		return &repositories{
			tx:          database.NoopTransactor{},
			users:       &mocks.UserRepository{},
			departments: &mocks.DepartmentRepository{},
			logs:        &mocks.LogRepository{},
			close:       func() { *closed++ },
		}, nil
	}
}

func TestRun_OpenFailure(t *testing.T) {
	open := func(context.Context, *config.Config) (*repositories, error) {
		return nil, errors.New("connection refused")
	}

	err := run(context.Background(), testConfig(), open)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRun_StartupFailureClosesRepositories(t *testing.T) {
	cfg := testConfig()
	cfg.Attendance.ResetCron = "not a cron spec"

	closed := 0
	err := run(context.Background(), cfg, fakeRepositories(&closed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register cron jobs")
	assert.Equal(t, 1, closed)
}

func TestRun_ShutdownClosesRepositories(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	closed := 0
	require.NoError(t, run(ctx, testConfig(), fakeRepositories(&closed)))
	assert.Equal(t, 1, closed)
}
