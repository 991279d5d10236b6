package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/metrics"
	"movie-recommendation-service/internal/models"
)

// MaxRecommendations caps the personalized result list.
const MaxRecommendations = 10

// ErrPreferencesNotSet is returned when a user asks for recommendations
// without having stated any preference.
var ErrPreferencesNotSet = apperr.PreconditionFailed("movie preferences not set")

// RecommendationService ranks the catalog against a user's preferences.
type RecommendationService struct {
	users  UserStore
	movies MovieStore
	cache  recommendationCache
}

// NewRecommendationService creates a new RecommendationService. rdb may be
// nil, in which case results are not cached.
func NewRecommendationService(users UserStore, movies MovieStore, rdb *redis.Client) *RecommendationService {
	return &RecommendationService{
		users:  users,
		movies: movies,
		cache:  recommendationCache{rdb: rdb},
	}
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if n := normalizeTag(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// ScoreMovie counts the movie's genres, director and cast members that
// appear in prefs. Each distinct genre counts once.
func ScoreMovie(m models.MovieDetail, prefs models.MoviePreferences) int {
	return scoreWith(m, tagSet(prefs.Genres), tagSet(prefs.Directors), tagSet(prefs.Actors))
}

func scoreWith(m models.MovieDetail, genres, directors, actors map[string]struct{}) int {
	score := 0
	for g := range tagSet(m.Genres) {
		if _, ok := genres[g]; ok {
			score++
		}
	}
	if name := normalizeTag(m.DirectorName()); name != "" {
		if _, ok := directors[name]; ok {
			score++
		}
	}
	for _, actor := range m.CastNames() {
		if _, ok := actors[normalizeTag(actor)]; ok {
			score++
		}
	}
	return score
}

// RankMovies scores every movie, drops zero scores and returns at most limit
// results ordered by descending score. Equal scores keep catalog order.
func RankMovies(details []models.MovieDetail, prefs models.MoviePreferences, limit int) []models.ScoredMovie {
	genres, directors, actors := tagSet(prefs.Genres), tagSet(prefs.Directors), tagSet(prefs.Actors)

	scored := make([]models.ScoredMovie, 0)
	for _, m := range details {
		if s := scoreWith(m, genres, directors, actors); s > 0 {
			scored = append(scored, models.ScoredMovie{Movie: m, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// GetPersonalizedRecommendations returns up to MaxRecommendations movies
// matching the user's stated preferences, best match first.
func (s *RecommendationService) GetPersonalizedRecommendations(ctx context.Context, userID string) ([]models.MovieDetail, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MoviePreferences.IsEmpty() {
		return nil, ErrPreferencesNotSet
	}

	if cached, ok := s.cache.get(ctx, userID); ok {
		slog.Debug("recommendations cache hit", "user_id", userID)
		return cached, nil
	}

	start := time.Now()
	catalog, err := s.movies.ListAllDetails(ctx)
	if err != nil {
		return nil, err
	}

	ranked := RankMovies(catalog, user.MoviePreferences, MaxRecommendations)
	result := make([]models.MovieDetail, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.Movie)
	}
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	s.cache.set(ctx, userID, result)
	return result, nil
}

// Forget drops the cached ranking of one user.
func (s *RecommendationService) Forget(ctx context.Context, userID string) {
	s.cache.forget(ctx, userID)
}
