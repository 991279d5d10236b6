package service

import (
	"context"
	"log/slog"
	"math"

	"movie-recommendation-service/internal/metrics"
	"movie-recommendation-service/internal/models"
)

// SimilarRatingDelta is the largest IMDb rating gap at which two movies are
// still considered similar.
const SimilarRatingDelta = 0.4

// ratingEpsilon absorbs float error so a gap of exactly 0.4 still matches.
const ratingEpsilon = 1e-9

// SimilarityService computes and stores similar-title lists.
type SimilarityService struct {
	movies MovieStore
}

// NewSimilarityService creates a new SimilarityService.
func NewSimilarityService(movies MovieStore) *SimilarityService {
	return &SimilarityService{movies: movies}
}

// IsSimilar reports whether candidate is similar to target: a shared genre,
// the same director, or IMDb ratings within SimilarRatingDelta.
func IsSimilar(target, candidate models.Movie) bool {
	if target.ID == candidate.ID {
		return false
	}
	if sharesAny(target.Genres, candidate.Genres) {
		return true
	}
	if target.DirectorID != nil && candidate.DirectorID != nil && *target.DirectorID == *candidate.DirectorID {
		return true
	}
	return math.Abs(target.ImdbRating-candidate.ImdbRating) <= SimilarRatingDelta+ratingEpsilon
}

// FindSimilarTitles returns the IDs of every catalog movie similar to
// target, in catalog order.
func FindSimilarTitles(target models.Movie, catalog []models.Movie) []string {
	ids := make([]string, 0)
	for _, m := range catalog {
		if IsSimilar(target, m) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func sharesAny(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// RefreshSimilarTitles recomputes and replaces the similar-title list of a
// movie against the whole catalog.
func (s *SimilarityService) RefreshSimilarTitles(ctx context.Context, movieID string) ([]string, error) {
	target, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.movies.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := FindSimilarTitles(*target, catalog)
	if err := s.movies.SetSimilarTitles(ctx, movieID, ids); err != nil {
		return nil, err
	}

	metrics.SimilarTitlesRefreshed.Inc()
	slog.Info("similar titles refreshed", "movie_id", movieID, "count", len(ids))
	return ids, nil
}

// GetSimilarTitles returns the stored similar titles of a movie.
func (s *SimilarityService) GetSimilarTitles(ctx context.Context, movieID string) ([]models.Movie, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if len(movie.SimilarTitles) == 0 {
		return []models.Movie{}, nil
	}
	return s.movies.GetByIDs(ctx, movie.SimilarTitles)
}
