package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-recommendation-service/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	return Open(cfg.DSN(), cfg.DBName)
}

// Open connects to the given DSN and runs migrations.
func Open(dsn, name string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", name)

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates the schema. Every statement is idempotent.
//
// Reference collections are stored as TEXT[] of ids rather than join tables;
// cast_ids is ordered by billing. reviews.movie_id has no foreign key, so
// deleting a movie leaves its reviews in place.
func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(320) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			profile_photo TEXT NOT NULL DEFAULT '',
			pref_genres TEXT[] NOT NULL DEFAULT '{}',
			pref_directors TEXT[] NOT NULL DEFAULT '{}',
			pref_actors TEXT[] NOT NULL DEFAULT '{}',
			wishlist TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS people (
			id UUID PRIMARY KEY,
			tmdb_id INTEGER UNIQUE,
			name VARCHAR(200) NOT NULL,
			biography TEXT NOT NULL DEFAULT '',
			filmography TEXT[] NOT NULL DEFAULT '{}',
			awards JSONB NOT NULL DEFAULT '[]',
			photos TEXT[] NOT NULL DEFAULT '{}',
			searched_times INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS movies (
			id UUID PRIMARY KEY,
			tmdb_id INTEGER UNIQUE,
			title VARCHAR(500) NOT NULL,
			genres TEXT[] NOT NULL DEFAULT '{}',
			director_id UUID,
			cast_ids TEXT[] NOT NULL DEFAULT '{}',
			imdb_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			release_date DATE NOT NULL,
			runtime INTEGER NOT NULL DEFAULT 0,
			synopsis TEXT NOT NULL DEFAULT '',
			average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			cover_photo TEXT NOT NULL DEFAULT '',
			trivia TEXT[] NOT NULL DEFAULT '{}',
			goofs TEXT[] NOT NULL DEFAULT '{}',
			soundtrack TEXT NOT NULL DEFAULT '',
			age_rating VARCHAR(20) NOT NULL DEFAULT '',
			parental_guidance TEXT NOT NULL DEFAULT '',
			country_of_origin VARCHAR(100) NOT NULL DEFAULT '',
			language VARCHAR(50) NOT NULL DEFAULT '',
			keywords TEXT[] NOT NULL DEFAULT '{}',
			review_ids TEXT[] NOT NULL DEFAULT '{}',
			similar_titles TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			movie_id UUID NOT NULL,
			rating_value SMALLINT NOT NULL CHECK (rating_value BETWEEN 1 AND 5),
			review_text TEXT NOT NULL DEFAULT '',
			liked_by TEXT[] NOT NULL DEFAULT '{}',
			like_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			movie_id UUID NOT NULL,
			reminder_date DATE NOT NULL,
			notification_type VARCHAR(20) NOT NULL DEFAULT 'email',
			sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lists (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			owner_id UUID NOT NULL,
			movies TEXT[] NOT NULL DEFAULT '{}',
			followers TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS forums (
			id UUID PRIMARY KEY,
			name VARCHAR(200) UNIQUE NOT NULL,
			description TEXT NOT NULL,
			created_by UUID NOT NULL,
			moderators TEXT[] NOT NULL DEFAULT '{}',
			members TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY,
			forum_id UUID NOT NULL REFERENCES forums(id) ON DELETE CASCADE,
			title VARCHAR(300) NOT NULL,
			content TEXT NOT NULL,
			created_by UUID NOT NULL,
			upvotes TEXT[] NOT NULL DEFAULT '{}',
			downvotes TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id UUID PRIMARY KEY,
			title VARCHAR(300) NOT NULL,
			content TEXT NOT NULL,
			category VARCHAR(50) NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			author_id UUID NOT NULL,
			published_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			cover_image TEXT NOT NULL DEFAULT '',
			views INTEGER NOT NULL DEFAULT 0,
			is_published BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_imdb_rating ON movies(imdb_rating)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_movie_id ON reviews(movie_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(reminder_date, sent)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_user_id ON reminders(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_lists_owner_id ON lists(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_forum_id ON posts(forum_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
