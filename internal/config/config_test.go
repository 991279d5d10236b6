package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"00:00", 0, 0, false},
		{"09:30", 9, 30, false},
		{" 23:59 ", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"noon", 0, 0, true},
		{"12", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REMINDER_RUN_AT", "")
	t.Setenv("REMINDER_TIMEZONE", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 0, cfg.Reminder.Hour)
	assert.Equal(t, 0, cfg.Reminder.Minute)
	assert.Equal(t, time.UTC, cfg.Reminder.Location)
}

func TestLoad_CustomReminderSchedule(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REMINDER_RUN_AT", "09:15")
	t.Setenv("REMINDER_TIMEZONE", "Europe/Berlin")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Reminder.Hour)
	assert.Equal(t, 15, cfg.Reminder.Minute)
	assert.Equal(t, "Europe/Berlin", cfg.Reminder.Location.String())
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REMINDER_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())

	d.SSLRootCert = "/ca.pem"
	assert.Contains(t, d.DSN(), "sslrootcert=/ca.pem")
}
