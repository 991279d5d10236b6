package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const listNotFound = "list not found"

const listColumns = `id, name, owner_id, movies, followers, created_at`

// ListRepository handles database operations for user movie lists.
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new ListRepository.
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

func scanList(row scanner) (*models.List, error) {
	var l models.List
	if err := row.Scan(&l.ID, &l.Name, &l.OwnerID, pq.Array(&l.Movies), pq.Array(&l.Followers), &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Movies = nonNil(l.Movies)
	l.Followers = nonNil(l.Followers)
	return &l, nil
}

// Create inserts a list and fills in its ID.
func (r *ListRepository) Create(ctx context.Context, l *models.List) error {
	l.ID = newID()
	l.CreatedAt = time.Now().UTC()
	l.Movies = nonNil(l.Movies)
	l.Followers = []string{}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lists (id, name, owner_id, movies, created_at) VALUES ($1, $2, $3, $4, $5)
	`, l.ID, l.Name, l.OwnerID, pq.Array(l.Movies), l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	return nil
}

// GetByID returns a list by ID.
func (r *ListRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	l, err := scanList(r.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM lists WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, listNotFound)
	}
	return l, nil
}

// ListForUser returns lists the user owns or follows.
func (r *ListRepository) ListForUser(ctx context.Context, userID string) ([]models.List, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+listColumns+` FROM lists
		WHERE owner_id::text = $1 OR $1 = ANY(followers)
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user lists: %w", err)
	}
	defer rows.Close()

	lists := make([]models.List, 0)
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// addToArray and removeFromArray edit a TEXT[] column idempotently.
func (r *ListRepository) addToArray(ctx context.Context, column, id, value string) (*models.List, error) {
	l, err := scanList(r.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE lists
		SET %[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END
		WHERE id = $1
		RETURNING `+listColumns, column), id, value))
	if err != nil {
		return nil, translate(err, listNotFound)
	}
	return l, nil
}

func (r *ListRepository) removeFromArray(ctx context.Context, column, id, value string) (*models.List, error) {
	l, err := scanList(r.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE lists SET %[1]s = array_remove(%[1]s, $2) WHERE id = $1
		RETURNING `+listColumns, column), id, value))
	if err != nil {
		return nil, translate(err, listNotFound)
	}
	return l, nil
}

func (r *ListRepository) AddMovie(ctx context.Context, id, movieID string) (*models.List, error) {
	return r.addToArray(ctx, "movies", id, movieID)
}

func (r *ListRepository) RemoveMovie(ctx context.Context, id, movieID string) (*models.List, error) {
	return r.removeFromArray(ctx, "movies", id, movieID)
}

func (r *ListRepository) AddFollower(ctx context.Context, id, userID string) (*models.List, error) {
	return r.addToArray(ctx, "followers", id, userID)
}

func (r *ListRepository) RemoveFollower(ctx context.Context, id, userID string) (*models.List, error) {
	return r.removeFromArray(ctx, "followers", id, userID)
}

// Delete removes a list.
func (r *ListRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return translate(err, listNotFound)
	}
	return expectAffected(res, listNotFound)
}
