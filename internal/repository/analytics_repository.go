package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-recommendation-service/internal/models"
)

// AnalyticsRepository runs the admin leaderboard queries.
type AnalyticsRepository struct {
	db     *sql.DB
	movies *MovieRepository
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db, movies: NewMovieRepository(db)}
}

// MostLikedPosts ranks posts by upvotes.
func (r *AnalyticsRepository) MostLikedPosts(ctx context.Context, limit int) ([]models.LikedPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, f.id, f.name, p.created_by, COALESCE(u.username, ''), cardinality(p.upvotes) AS likes
		FROM posts p
		JOIN forums f ON f.id = p.forum_id
		LEFT JOIN users u ON u.id = p.created_by
		ORDER BY likes DESC, p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("most liked posts: %w", err)
	}
	defer rows.Close()

	result := make([]models.LikedPost, 0)
	for rows.Next() {
		var p models.LikedPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Forum.ID, &p.Forum.Name, &p.Author.ID, &p.Author.Name, &p.LikeCount); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// MostLikedReviews ranks reviews by like count.
func (r *AnalyticsRepository) MostLikedReviews(ctx context.Context, limit int) ([]models.LikedReview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rv.id, rv.review_text, rv.rating_value, rv.movie_id, COALESCE(m.title, ''),
			rv.user_id, COALESCE(u.username, ''), rv.like_count
		FROM reviews rv
		LEFT JOIN movies m ON m.id = rv.movie_id
		LEFT JOIN users u ON u.id = rv.user_id
		ORDER BY rv.like_count DESC, rv.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("most liked reviews: %w", err)
	}
	defer rows.Close()

	result := make([]models.LikedReview, 0)
	for rows.Next() {
		var rv models.LikedReview
		if err := rows.Scan(&rv.ID, &rv.ReviewText, &rv.RatingValue, &rv.Movie.ID, &rv.Movie.Name,
			&rv.Author.ID, &rv.Author.Name, &rv.LikeCount); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	return result, rows.Err()
}

// ForumsByMembers ranks forums by member count.
func (r *AnalyticsRepository) ForumsByMembers(ctx context.Context, limit int) ([]models.ForumStat, error) {
	return r.forumStats(ctx, `
		SELECT id, name, cardinality(members) AS n FROM forums ORDER BY n DESC, name LIMIT $1
	`, limit)
}

// ForumsByPosts ranks forums by post count.
func (r *AnalyticsRepository) ForumsByPosts(ctx context.Context, limit int) ([]models.ForumStat, error) {
	return r.forumStats(ctx, `
		SELECT f.id, f.name, COUNT(p.id) AS n
		FROM forums f LEFT JOIN posts p ON p.forum_id = f.id
		GROUP BY f.id, f.name
		ORDER BY n DESC, f.name
		LIMIT $1
	`, limit)
}

func (r *AnalyticsRepository) forumStats(ctx context.Context, query string, limit int) ([]models.ForumStat, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("forum stats: %w", err)
	}
	defer rows.Close()

	result := make([]models.ForumStat, 0)
	for rows.Next() {
		var s models.ForumStat
		if err := rows.Scan(&s.ID, &s.Name, &s.Count); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// MostPopularMovies ranks movies by IMDb rating with names resolved.
func (r *AnalyticsRepository) MostPopularMovies(ctx context.Context, limit int) ([]models.PopularMovie, error) {
	movies, err := r.movies.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY imdb_rating DESC, title LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("most popular movies: %w", err)
	}
	details, err := r.movies.resolve(ctx, movies)
	if err != nil {
		return nil, err
	}

	result := make([]models.PopularMovie, 0, len(details))
	for _, d := range details {
		result = append(result, models.PopularMovie{
			ID:         d.ID,
			Title:      d.Title,
			ImdbRating: d.ImdbRating,
			Director:   d.Director,
			Cast:       d.CastMembers,
		})
	}
	return result, nil
}
