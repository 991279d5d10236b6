package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/tmdb"
)

// Catalog import bounds.
const (
	MaxSyncPages   = 20
	importCastSize = 5
)

// CatalogSource is the upstream movie database used for imports.
type CatalogSource interface {
	Enabled() bool
	GetGenres(ctx context.Context) ([]tmdb.Genre, error)
	DiscoverMovies(ctx context.Context, page int) (*tmdb.DiscoverResponse, error)
	GetMovieDetail(ctx context.Context, tmdbID int) (*tmdb.MovieDetail, error)
	GetCredits(ctx context.Context, tmdbID int) (*tmdb.Credits, error)
}

// SyncResult summarises a catalog import.
type SyncResult struct {
	Pages  int `json:"pages"`
	Movies int `json:"movies"`
	People int `json:"people"`
}

// CatalogService imports movies and their credits from TMDB.
type CatalogService struct {
	source CatalogSource
	movies MovieStore
	people PersonStore
	cache  cacheFlusher
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(source CatalogSource, movies MovieStore, people PersonStore, rdb *redis.Client) *CatalogService {
	return &CatalogService{source: source, movies: movies, people: people, cache: recommendationCache{rdb: rdb}}
}

// SyncCatalog imports the given number of discover pages. Movies and people
// are matched on their TMDB ids, so repeated imports update in place.
func (s *CatalogService) SyncCatalog(ctx context.Context, pages int) (*SyncResult, error) {
	if s.source == nil || !s.source.Enabled() {
		return nil, apperr.PreconditionFailed("TMDB API key not configured")
	}
	if pages < 1 || pages > MaxSyncPages {
		return nil, apperr.Validation("validation failed", map[string]string{
			"pages": fmt.Sprintf("must be between 1 and %d", MaxSyncPages),
		})
	}

	slog.Info("starting TMDB sync", "pages", pages)

	genres, err := s.source.GetGenres(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to fetch TMDB genres", err)
	}
	genreNames := make(map[int]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}

	result := &SyncResult{}
	people := make(map[int]string)
	for page := 1; page <= pages; page++ {
		resp, err := s.source.DiscoverMovies(ctx, page)
		if err != nil {
			slog.Error("failed to fetch TMDB page", "page", page, "error", err)
			continue
		}
		result.Pages++

		for _, tm := range resp.Results {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := s.importMovie(ctx, tm, genreNames, people); err != nil {
				slog.Error("failed to import movie", "tmdb_id", tm.ID, "title", tm.Title, "error", err)
				continue
			}
			result.Movies++
		}
	}
	result.People = len(people)

	s.cache.flush(ctx)
	slog.Info("TMDB sync complete", "pages", result.Pages, "movies", result.Movies, "people", result.People)
	return result, nil
}

func (s *CatalogService) importMovie(ctx context.Context, tm tmdb.Movie, genreNames map[int]string, people map[int]string) error {
	release, err := time.Parse(dateLayout, tm.ReleaseDate)
	if err != nil {
		return fmt.Errorf("invalid release date %q: %w", tm.ReleaseDate, err)
	}

	genres := make([]string, 0, len(tm.GenreIDs))
	for _, id := range tm.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}

	tmdbID := tm.ID
	m := &models.Movie{
		TMDBId:      &tmdbID,
		Title:       tm.Title,
		Genres:      genres,
		ImdbRating:  tm.VoteAverage,
		ReleaseDate: release,
		Synopsis:    tm.Overview,
		CoverPhoto:  tmdb.PosterURL(tm.PosterPath),
		Language:    tm.OriginalLanguage,
	}

	if detail, err := s.source.GetMovieDetail(ctx, tm.ID); err != nil {
		slog.Warn("failed to fetch TMDB movie detail", "tmdb_id", tm.ID, "error", err)
	} else {
		m.Runtime = detail.Runtime
		if len(detail.ProductionCountries) > 0 {
			m.CountryOfOrigin = detail.ProductionCountries[0].Name
		}
	}

	credits, err := s.source.GetCredits(ctx, tm.ID)
	if err != nil {
		return fmt.Errorf("fetch credits: %w", err)
	}

	var personIDs []string
	if d, ok := credits.Director(); ok {
		id, err := s.upsertPerson(ctx, d.ID, d.Name, people)
		if err != nil {
			return err
		}
		m.DirectorID = &id
		personIDs = append(personIDs, id)
	}

	cast := append([]tmdb.CastMember(nil), credits.Cast...)
	sort.SliceStable(cast, func(i, j int) bool { return cast[i].Order < cast[j].Order })
	if len(cast) > importCastSize {
		cast = cast[:importCastSize]
	}
	for _, c := range cast {
		id, err := s.upsertPerson(ctx, c.ID, c.Name, people)
		if err != nil {
			return err
		}
		m.CastIDs = append(m.CastIDs, id)
		personIDs = append(personIDs, id)
	}

	movieID, err := s.movies.UpsertByTMDBId(ctx, m)
	if err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}
	for _, pid := range personIDs {
		if _, err := s.people.AddToFilmography(ctx, pid, movieID); err != nil {
			slog.Warn("failed to link filmography", "person_id", pid, "movie_id", movieID, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) upsertPerson(ctx context.Context, tmdbID int, name string, seen map[int]string) (string, error) {
	if id, ok := seen[tmdbID]; ok {
		return id, nil
	}
	id, err := s.people.UpsertByTMDBId(ctx, tmdbID, name)
	if err != nil {
		return "", fmt.Errorf("upsert person %q: %w", name, err)
	}
	seen[tmdbID] = id
	return id, nil
}
