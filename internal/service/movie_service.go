package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

const dateLayout = "2006-01-02"

// MovieService handles catalog CRUD. Every catalog write drops the cached
// recommendations.
type MovieService struct {
	movies MovieStore
	cache  cacheFlusher
}

// NewMovieService creates a new MovieService.
func NewMovieService(movies MovieStore, rdb *redis.Client) *MovieService {
	return &MovieService{movies: movies, cache: recommendationCache{rdb: rdb}}
}

// CreateMovie adds a movie to the catalog.
func (s *MovieService) CreateMovie(ctx context.Context, req models.CreateMovieRequest) (*models.Movie, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	release, err := time.Parse(dateLayout, req.ReleaseDate)
	if err != nil {
		return nil, apperr.Validation("validation failed", map[string]string{"releaseDate": "must be a date (YYYY-MM-DD)"})
	}

	m := &models.Movie{
		Title:            req.Title,
		Genres:           req.Genres,
		DirectorID:       req.DirectorID,
		CastIDs:          req.CastIDs,
		ImdbRating:       req.ImdbRating,
		ReleaseDate:      release,
		Runtime:          req.Runtime,
		Synopsis:         req.Synopsis,
		AverageRating:    req.AverageRating,
		CoverPhoto:       req.CoverPhoto,
		Trivia:           req.Trivia,
		Goofs:            req.Goofs,
		Soundtrack:       req.Soundtrack,
		AgeRating:        req.AgeRating,
		ParentalGuidance: req.ParentalGuidance,
		CountryOfOrigin:  req.CountryOfOrigin,
		Language:         req.Language,
		Keywords:         req.Keywords,
	}
	if err := s.movies.Create(ctx, m); err != nil {
		return nil, err
	}

	s.cache.flush(ctx)
	slog.Info("movie created", "movie_id", m.ID, "title", m.Title)
	return m, nil
}

// GetMovie returns a movie with its director and cast names.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*models.MovieDetail, error) {
	return s.movies.GetDetail(ctx, id)
}

// ListMovies returns a page of movies.
func (s *MovieService) ListMovies(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error) {
	params.Normalize()
	return s.movies.List(ctx, params)
}

// UpdateMovie applies an allow-listed partial update.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, p models.MoviePatch) (*models.Movie, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	if p.Empty() {
		return nil, apperr.Validation("no fields to update", nil)
	}

	m, err := s.movies.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.cache.flush(ctx)
	return m, nil
}

// DeleteMovie removes a movie. Its reviews are kept.
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.flush(ctx)
	slog.Info("movie deleted", "movie_id", id)
	return nil
}
