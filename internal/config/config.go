package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the recommendation service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Reminder  ReminderConfig
	RateLimit RateLimitConfig
	TMDB      TMDBConfig
	Port      string
	LogLevel  string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int
}

// SMTPConfig holds outgoing mail settings. An empty Host disables real delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	UseTLS   bool
}

// Enabled reports whether an SMTP server is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// ReminderConfig controls the daily reminder run.
type ReminderConfig struct {
	Enabled  bool
	Hour     int
	Minute   int
	Location *time.Location
}

// RateLimitConfig holds the fixed-window limiter settings.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey            string
	BaseURL           string
	RequestsPerSecond float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	rateMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100"))
	rateWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	tmdbRPS, _ := strconv.ParseFloat(getEnv("TMDB_REQUESTS_PER_SECOND", "4"), 64)

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	hour, minute, err := ParseClock(getEnv("REMINDER_RUN_AT", "00:00"))
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(getEnv("REMINDER_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIMEZONE: %w", err)
	}

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "movie_recommendation"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret:  secret,
			JWTExpiry:  jwtExpiry,
			BcryptCost: bcryptCost,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     smtpPort,
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@movie-app.local"),
			UseTLS:   getEnvBool("SMTP_USE_TLS", true),
		},
		Reminder: ReminderConfig{
			Enabled:  getEnvBool("REMINDER_ENABLED", true),
			Hour:     hour,
			Minute:   minute,
			Location: loc,
		},
		RateLimit: RateLimitConfig{
			Max:           rateMax,
			WindowSeconds: rateWindow,
		},
		TMDB: TMDBConfig{
			APIKey:            getEnv("TMDB_API_KEY", ""),
			BaseURL:           getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			RequestsPerSecond: tmdbRPS,
		},
		Port:     getEnv("SERVER_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// ParseClock parses a "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid REMINDER_RUN_AT %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid REMINDER_RUN_AT %q: bad hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid REMINDER_RUN_AT %q: bad minute", s)
	}
	return hour, minute, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
