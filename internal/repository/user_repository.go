package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const userNotFound = "user not found"

const userColumns = `id, username, email, password_hash, role, profile_photo,
	pref_genres, pref_directors, pref_actors, wishlist, created_at`

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.ProfilePhoto,
		pq.Array(&u.MoviePreferences.Genres), pq.Array(&u.MoviePreferences.Directors),
		pq.Array(&u.MoviePreferences.Actors), pq.Array(&u.PersonalWishlist), &u.CreatedAt); err != nil {
		return nil, err
	}
	u.MoviePreferences.Genres = nonNil(u.MoviePreferences.Genres)
	u.MoviePreferences.Directors = nonNil(u.MoviePreferences.Directors)
	u.MoviePreferences.Actors = nonNil(u.MoviePreferences.Actors)
	u.PersonalWishlist = nonNil(u.PersonalWishlist)
	return &u, nil
}

// Create inserts a user and fills in its ID. Duplicate username or email
// yields a conflict error.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.ID = newID()
	u.CreatedAt = time.Now().UTC()
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, profile_photo,
			pref_genres, pref_directors, pref_actors, wishlist, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.ProfilePhoto,
		pq.Array(nonNil(u.MoviePreferences.Genres)), pq.Array(nonNil(u.MoviePreferences.Directors)),
		pq.Array(nonNil(u.MoviePreferences.Actors)), pq.Array(nonNil(u.PersonalWishlist)), u.CreatedAt)
	return translate(err, userNotFound)
}

// GetByID returns a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, userNotFound)
	}
	return u, nil
}

// GetByEmail returns a user by email address (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, translate(err, userNotFound)
	}
	return u, nil
}

// List returns all users ordered by creation.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update applies a profile patch and returns the updated user.
func (r *UserRepository) Update(ctx context.Context, id string, p models.UserPatch) (*models.User, error) {
	var b updateBuilder
	if p.Username != nil {
		b.set("username", *p.Username)
	}
	if p.Email != nil {
		b.set("email", *p.Email)
	}
	if p.ProfilePhoto != nil {
		b.set("profile_photo", *p.ProfilePhoto)
	}
	if p.MoviePreferences != nil {
		b.set("pref_genres", pq.Array(nonNil(p.MoviePreferences.Genres)))
		b.set("pref_directors", pq.Array(nonNil(p.MoviePreferences.Directors)))
		b.set("pref_actors", pq.Array(nonNil(p.MoviePreferences.Actors)))
	}
	if p.PersonalWishlist != nil {
		b.set("wishlist", pq.Array(nonNil(*p.PersonalWishlist)))
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := b.build("users", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, userNotFound)
	}
	if err := expectAffected(res, userNotFound); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, userNotFound)
	}
	return expectAffected(res, userNotFound)
}
