package service

import (
	"context"
	"log/slog"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/metrics"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

// ReviewService records ratings and keeps each movie's average current.
type ReviewService struct {
	movies  MovieStore
	reviews ReviewStore
}

// NewReviewService creates a new ReviewService.
func NewReviewService(movies MovieStore, reviews ReviewStore) *ReviewService {
	return &ReviewService{movies: movies, reviews: reviews}
}

// IncrementalAverage folds rating into an average over n ratings, where old
// is the average of the first n-1.
func IncrementalAverage(old float64, n int, rating int) float64 {
	if n <= 1 {
		return float64(rating)
	}
	return (old*float64(n-1) + float64(rating)) / float64(n)
}

// AddReview stores a review for movieID and updates the movie's average
// rating and review list.
func (s *ReviewService) AddReview(ctx context.Context, userID, movieID string, req models.CreateReviewRequest) (*models.Review, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.RatingValue < models.MinRating || req.RatingValue > models.MaxRating {
		return nil, apperr.Validation("rating must be between 1 and 5", map[string]string{
			"ratingValue": "must be between 1 and 5",
		})
	}

	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:      userID,
		MovieID:     movieID,
		RatingValue: req.RatingValue,
		ReviewText:  req.ReviewText,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	avg := IncrementalAverage(movie.AverageRating, len(movie.Reviews)+1, req.RatingValue)
	if err := s.movies.AppendReview(ctx, movieID, review.ID, avg); err != nil {
		slog.Error("review stored but movie not updated",
			"review_id", review.ID, "movie_id", movieID, "error", err)
		return nil, apperr.Internal("failed to update movie rating", err)
	}

	metrics.ReviewsCreated.Inc()
	slog.Info("review created", "review_id", review.ID, "movie_id", movieID, "average_rating", avg)
	return review, nil
}

// ListReviews returns the reviews of a movie.
func (s *ReviewService) ListReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	ok, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("movie not found")
	}
	return s.reviews.ListByMovie(ctx, movieID)
}

// LikeReview records userID as liking the review. Liking twice is a no-op.
func (s *ReviewService) LikeReview(ctx context.Context, reviewID, userID string) (*models.Review, error) {
	return s.reviews.AddLike(ctx, reviewID, userID)
}

// UnlikeReview removes userID's like from the review.
func (s *ReviewService) UnlikeReview(ctx context.Context, reviewID, userID string) (*models.Review, error) {
	return s.reviews.RemoveLike(ctx, reviewID, userID)
}
