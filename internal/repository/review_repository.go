package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const reviewNotFound = "review not found"

const reviewColumns = `id, user_id, movie_id, rating_value, review_text, liked_by, like_count, created_at`

// ReviewRepository handles database operations for reviews.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func scanReview(row scanner) (*models.Review, error) {
	var rv models.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.MovieID, &rv.RatingValue, &rv.ReviewText,
		pq.Array(&rv.LikedBy), &rv.LikeCount, &rv.CreatedAt); err != nil {
		return nil, err
	}
	rv.LikedBy = nonNil(rv.LikedBy)
	return &rv, nil
}

// Create inserts a review and fills in its ID and timestamp.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	rv.ID = newID()
	rv.CreatedAt = time.Now().UTC()
	rv.LikedBy = []string{}
	rv.LikeCount = 0

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, movie_id, rating_value, review_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rv.ID, rv.UserID, rv.MovieID, rv.RatingValue, rv.ReviewText, rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID returns a review by ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, reviewNotFound)
	}
	return rv, nil
}

// ListByMovie returns a movie's reviews, newest first.
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reviewColumns+` FROM reviews WHERE movie_id = $1 ORDER BY created_at DESC, id
	`, movieID)
	if err != nil {
		return nil, translate(err, reviewNotFound)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

// AddLike records userID as liking the review. like_count always equals the
// size of liked_by.
func (r *ReviewRepository) AddLike(ctx context.Context, reviewID, userID string) (*models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, `
		UPDATE reviews
		SET liked_by = CASE WHEN $2 = ANY(liked_by) THEN liked_by ELSE array_append(liked_by, $2) END,
			like_count = cardinality(CASE WHEN $2 = ANY(liked_by) THEN liked_by ELSE array_append(liked_by, $2) END)
		WHERE id = $1
		RETURNING `+reviewColumns, reviewID, userID))
	if err != nil {
		return nil, translate(err, reviewNotFound)
	}
	return rv, nil
}

// RemoveLike withdraws userID's like.
func (r *ReviewRepository) RemoveLike(ctx context.Context, reviewID, userID string) (*models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, `
		UPDATE reviews
		SET liked_by = array_remove(liked_by, $2),
			like_count = cardinality(array_remove(liked_by, $2))
		WHERE id = $1
		RETURNING `+reviewColumns, reviewID, userID))
	if err != nil {
		return nil, translate(err, reviewNotFound)
	}
	return rv, nil
}
