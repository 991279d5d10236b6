package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"movie-recommendation-service/internal/config"
	"movie-recommendation-service/internal/metrics"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("TMDB API key not configured")

// Client is the TMDB API client. Requests are throttled to the configured
// rate.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new TMDB API client.
func NewClient(cfg config.TMDBConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// DiscoverResponse is the TMDB discover/movie response.
type DiscoverResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movie is a movie from TMDB discover results.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	PosterPath       string  `json:"poster_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
}

// MovieDetail is the detailed movie info from TMDB.
type MovieDetail struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Overview            string    `json:"overview"`
	ReleaseDate         string    `json:"release_date"`
	VoteAverage         float64   `json:"vote_average"`
	PosterPath          string    `json:"poster_path"`
	Genres              []Genre   `json:"genres"`
	OriginalLanguage    string    `json:"original_language"`
	Runtime             int       `json:"runtime"`
	ProductionCountries []Country `json:"production_countries"`
}

// Country is a production country.
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// CastMember is a billed actor in a movie's credits.
type CastMember struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// CrewMember is a crew credit.
type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits is the TMDB movie/{id}/credits response.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Director returns the first crew member credited as director.
func (c Credits) Director() (CrewMember, bool) {
	for _, m := range c.Crew {
		if m.Job == "Director" {
			return m, true
		}
	}
	return CrewMember{}, false
}

// PosterURL returns the full URL of a poster path, or "" for none.
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + path
}

// DiscoverMovies fetches one page of popular movies.
func (c *Client) DiscoverMovies(ctx context.Context, page int) (*DiscoverResponse, error) {
	q := url.Values{}
	q.Set("sort_by", "popularity.desc")
	q.Set("page", fmt.Sprintf("%d", page))

	var result DiscoverResponse
	if err := c.get(ctx, "discover", "/discover/movie", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovieDetail fetches detailed movie info.
func (c *Client) GetMovieDetail(ctx context.Context, tmdbID int) (*MovieDetail, error) {
	var result MovieDetail
	if err := c.get(ctx, "movie", fmt.Sprintf("/movie/%d", tmdbID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCredits fetches the cast and crew of a movie.
func (c *Client) GetCredits(ctx context.Context, tmdbID int) (*Credits, error) {
	var result Credits
	if err := c.get(ctx, "credits", fmt.Sprintf("/movie/%d/credits", tmdbID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetGenres fetches all movie genres.
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var result genreListResponse
	if err := c.get(ctx, "genres", "/genre/movie/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Genres, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out interface{}) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.TMDBRequests.WithLabelValues(endpoint, outcome).Inc()
	}()

	if !c.Enabled() {
		return ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("TMDB rate limiter: %w", err)
	}

	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)

	slog.Debug("fetching TMDB", "endpoint", endpoint, "path", path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build TMDB request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
