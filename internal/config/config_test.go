package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("DB_DRIVER", "mongo")
	t.Setenv("APP_TIMEZONE", "UTC")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "davomat", cfg.Mongo.Database)
	assert.Equal(t, "0 0 * * *", cfg.Attendance.ResetCron)
	assert.Equal(t, []string{"*"}, cfg.App.CORSAllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)

	w := cfg.Attendance.Workday()
	assert.Equal(t, 9, w.StartHour)
	assert.Equal(t, 0, w.StartMinute)
	assert.Equal(t, 5, w.GraceMinutes)
	assert.Equal(t, "UTC", w.Location.String())
}

func TestLoad_CustomWorkday(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORKDAY_START", "08:30")
	t.Setenv("LATE_GRACE_MINUTES", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	w := cfg.Attendance.Workday()
	assert.Equal(t, 8, w.StartHour)
	assert.Equal(t, 30, w.StartMinute)
	assert.Equal(t, 10, w.GraceMinutes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad port", "APP_PORT", "eighty", "invalid APP_PORT"},
		{"bad grace", "LATE_GRACE_MINUTES", "five", "invalid LATE_GRACE_MINUTES"},
		{"negative grace", "LATE_GRACE_MINUTES", "-1", "LATE_GRACE_MINUTES must not be negative"},
		{"bad workday", "WORKDAY_START", "9am", "WORKDAY_START must be in HH:MM format"},
		{"bad timezone", "APP_TIMEZONE", "Mars/Olympus", "invalid APP_TIMEZONE"},
		{"bad driver", "DB_DRIVER", "sqlite", "DB_DRIVER must be one of"},
		{"bad expiry", "JWT_ACCESS_EXPIRATION_TIME", "soon", "invalid JWT_ACCESS_EXPIRATION_TIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_PostgresNeedsPassword(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD is required")
}

func TestValidate_RequiresSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY is required")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw", Name: "davomat", SSLMode: "disable",
	}}

	assert.Equal(t, "postgres://app:pw@db:5432/davomat?sslmode=disable", cfg.DatabaseURL())
}
