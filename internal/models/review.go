package models

import "time"

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a movie.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MovieID     string    `json:"movieId"`
	RatingValue int       `json:"ratingValue"`
	ReviewText  string    `json:"reviewText"`
	LikedBy     []string  `json:"likedBy"`
	LikeCount   int       `json:"likeCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateReviewRequest is the payload for reviewing a movie.
type CreateReviewRequest struct {
	RatingValue int    `json:"ratingValue" validate:"required,min=1,max=5"`
	ReviewText  string `json:"reviewText" validate:"max=5000"`
}
