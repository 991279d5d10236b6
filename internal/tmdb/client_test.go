package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-service/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.TMDBConfig{APIKey: "k3y", BaseURL: srv.URL + "/", RequestsPerSecond: 100})
}

func TestClient_DiscoverMovies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "k3y", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":2,"total_pages":9,"results":[{"id":438631,"title":"Dune","release_date":"2021-09-15","vote_average":7.8,"genre_ids":[878,12]}]}`))
	})

	resp, err := c.DiscoverMovies(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 9, resp.TotalPages)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Dune", resp.Results[0].Title)
	assert.Equal(t, []int{878, 12}, resp.Results[0].GenreIDs)
	assert.InDelta(t, 7.8, resp.Results[0].VoteAverage, 1e-9)
}

func TestClient_CreditsDirector(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/438631/credits", r.URL.Path)
		_, _ = w.Write([]byte(`{"cast":[{"id":2,"name":"Zendaya","order":1},{"id":1,"name":"Timothee Chalamet","order":0}],
			"crew":[{"id":9,"name":"Joe Walker","job":"Editor"},{"id":7,"name":"Denis Villeneuve","job":"Director"}]}`))
	})

	credits, err := c.GetCredits(context.Background(), 438631)
	require.NoError(t, err)
	assert.Len(t, credits.Cast, 2)

	director, ok := credits.Director()
	require.True(t, ok)
	assert.Equal(t, "Denis Villeneuve", director.Name)
}

func TestClient_GenresAndDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/genre/movie/list":
			_, _ = w.Write([]byte(`{"genres":[{"id":878,"name":"Science Fiction"}]}`))
		case "/movie/1":
			_, _ = w.Write([]byte(`{"id":1,"runtime":155,"production_countries":[{"iso_3166_1":"US","name":"United States of America"}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	genres, err := c.GetGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 878, Name: "Science Fiction"}}, genres)

	detail, err := c.GetMovieDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 155, detail.Runtime)
	require.Len(t, detail.ProductionCountries, 1)
	assert.Equal(t, "US", detail.ProductionCountries[0].Code)
}

func TestClient_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	})

	_, err := c.GetGenres(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(config.TMDBConfig{BaseURL: "http://127.0.0.1:1"})
	assert.False(t, c.Enabled())

	_, err := c.DiscoverMovies(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotConfigured)

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetGenres(ctx)
	assert.Error(t, err)
}

func TestPosterURL(t *testing.T) {
	assert.Equal(t, "", PosterURL(""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", PosterURL("/abc.jpg"))
}
