package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const movieNotFound = "movie not found"

const movieColumns = `id, tmdb_id, title, genres, director_id, cast_ids, imdb_rating, release_date,
	runtime, synopsis, average_rating, cover_photo, trivia, goofs, soundtrack, age_rating,
	parental_guidance, country_of_origin, language, keywords, review_ids, similar_titles,
	created_at, updated_at`

// MovieRepository handles database operations for movies.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func scanMovie(row scanner) (*models.Movie, error) {
	var m models.Movie
	var tmdbID sql.NullInt64
	var directorID sql.NullString
	err := row.Scan(
		&m.ID, &tmdbID, &m.Title, pq.Array(&m.Genres), &directorID, pq.Array(&m.CastIDs),
		&m.ImdbRating, &m.ReleaseDate, &m.Runtime, &m.Synopsis, &m.AverageRating,
		&m.CoverPhoto, pq.Array(&m.Trivia), pq.Array(&m.Goofs), &m.Soundtrack, &m.AgeRating,
		&m.ParentalGuidance, &m.CountryOfOrigin, &m.Language, pq.Array(&m.Keywords),
		pq.Array(&m.Reviews), pq.Array(&m.SimilarTitles), &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tmdbID.Valid {
		id := int(tmdbID.Int64)
		m.TMDBId = &id
	}
	if directorID.Valid {
		m.DirectorID = &directorID.String
	}
	m.Genres = nonNil(m.Genres)
	m.CastIDs = nonNil(m.CastIDs)
	m.Trivia = nonNil(m.Trivia)
	m.Goofs = nonNil(m.Goofs)
	m.Keywords = nonNil(m.Keywords)
	m.Reviews = nonNil(m.Reviews)
	m.SimilarTitles = nonNil(m.SimilarTitles)
	return &m, nil
}

func (r *MovieRepository) queryMovies(ctx context.Context, query string, args ...interface{}) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// Create inserts a movie and fills in its ID and timestamps.
func (r *MovieRepository) Create(ctx context.Context, m *models.Movie) error {
	m.ID = newID()
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO movies (id, tmdb_id, title, genres, director_id, cast_ids, imdb_rating,
			release_date, runtime, synopsis, average_rating, cover_photo, trivia, goofs,
			soundtrack, age_rating, parental_guidance, country_of_origin, language, keywords,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22)
	`, m.ID, nullableInt(m.TMDBId), m.Title, pq.Array(nonNil(m.Genres)), nullableString(m.DirectorID),
		pq.Array(nonNil(m.CastIDs)), m.ImdbRating, m.ReleaseDate.Format("2006-01-02"), m.Runtime,
		m.Synopsis, m.AverageRating, m.CoverPhoto, pq.Array(nonNil(m.Trivia)), pq.Array(nonNil(m.Goofs)),
		m.Soundtrack, m.AgeRating, m.ParentalGuidance, m.CountryOfOrigin, m.Language,
		pq.Array(nonNil(m.Keywords)), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return translate(err, movieNotFound)
	}
	m.Reviews = []string{}
	m.SimilarTitles = []string{}
	return nil
}

// UpsertByTMDBId inserts or refreshes a movie imported from TMDB. Derived
// fields of an existing row are left untouched.
func (r *MovieRepository) UpsertByTMDBId(ctx context.Context, m *models.Movie) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (id, tmdb_id, title, genres, director_id, cast_ids, imdb_rating,
			release_date, runtime, synopsis, cover_photo, language, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, $10, $11, $12, NOW())
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			genres = EXCLUDED.genres,
			director_id = COALESCE(EXCLUDED.director_id, movies.director_id),
			cast_ids = CASE WHEN cardinality(EXCLUDED.cast_ids) > 0 THEN EXCLUDED.cast_ids ELSE movies.cast_ids END,
			imdb_rating = EXCLUDED.imdb_rating,
			release_date = EXCLUDED.release_date,
			runtime = GREATEST(EXCLUDED.runtime, movies.runtime),
			synopsis = EXCLUDED.synopsis,
			cover_photo = EXCLUDED.cover_photo,
			language = EXCLUDED.language,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`, newID(), nullableInt(m.TMDBId), m.Title, pq.Array(nonNil(m.Genres)), nullableString(m.DirectorID),
		pq.Array(nonNil(m.CastIDs)), m.ImdbRating, m.ReleaseDate.Format("2006-01-02"), m.Runtime,
		m.Synopsis, m.CoverPhoto, m.Language).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert movie %q: %w", m.Title, err)
	}
	return id, nil
}

// GetByID returns a movie by ID.
func (r *MovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	m, err := scanMovie(row)
	if err != nil {
		return nil, translate(err, movieNotFound)
	}
	return m, nil
}

// GetByIDs returns the movies with the given IDs in the order given. Unknown
// IDs are skipped.
func (r *MovieRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error) {
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}
	movies, err := r.queryMovies(ctx, `SELECT `+movieColumns+` FROM movies WHERE id::text = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get movies by ids: %w", err)
	}

	byID := make(map[string]models.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	ordered := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

// Exists reports whether a movie with the given ID exists.
func (r *MovieRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id::text = $1)`, id).Scan(&exists)
	return exists, err
}

// ListAll returns every movie in storage order.
func (r *MovieRepository) ListAll(ctx context.Context) ([]models.Movie, error) {
	movies, err := r.queryMovies(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list all movies: %w", err)
	}
	return movies, nil
}

// ListAllDetails returns every movie in storage order with director and cast
// names resolved.
func (r *MovieRepository) ListAllDetails(ctx context.Context) ([]models.MovieDetail, error) {
	movies, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, movies)
}

// GetDetail returns a movie with director and cast names resolved.
func (r *MovieRepository) GetDetail(ctx context.Context, id string) (*models.MovieDetail, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.resolve(ctx, []models.Movie{*m})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (r *MovieRepository) resolve(ctx context.Context, movies []models.Movie) ([]models.MovieDetail, error) {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, m := range movies {
		if m.DirectorID != nil {
			add(*m.DirectorID)
		}
		for _, c := range m.CastIDs {
			add(c)
		}
	}

	names, err := lookupNames(ctx, r.db, "people", "name", ids)
	if err != nil {
		return nil, err
	}

	details := make([]models.MovieDetail, 0, len(movies))
	for _, m := range movies {
		d := models.MovieDetail{Movie: m, CastMembers: make([]models.PersonRef, 0, len(m.CastIDs))}
		if m.DirectorID != nil {
			if name, ok := names[*m.DirectorID]; ok {
				d.Director = &models.PersonRef{ID: *m.DirectorID, Name: name}
			}
		}
		for _, c := range m.CastIDs {
			if name, ok := names[c]; ok {
				d.CastMembers = append(d.CastMembers, models.PersonRef{ID: c, Name: name})
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// List returns a paginated list of movies matching the given filters.
func (r *MovieRepository) List(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	if params.Genre != "" {
		args = append(args, params.Genre)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(genres)", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	// sort column is whitelisted by MovieListParams.Normalize
	sortColumn := "release_date"
	switch params.SortBy {
	case "title", "imdb_rating", "average_rating":
		sortColumn = params.SortBy
	}
	orderDir := "DESC"
	if params.Order == "asc" {
		orderDir = "ASC"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies WHERE "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM movies WHERE %s ORDER BY %s %s NULLS LAST, id LIMIT $%d OFFSET $%d`,
		movieColumns, where, sortColumn, orderDir, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, offset(params.Page, params.PageSize))

	movies, err := r.queryMovies(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}

	p := models.NewPagination(total, params.Page, params.PageSize)
	return &models.MovieListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   p.TotalPages,
		TotalResults: total,
		Data:         movies,
	}, nil
}

// Update applies an allow-listed patch and returns the updated movie.
func (r *MovieRepository) Update(ctx context.Context, id string, p models.MoviePatch) (*models.Movie, error) {
	var b updateBuilder
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Genres != nil {
		b.set("genres", pq.Array(nonNil(*p.Genres)))
	}
	if p.DirectorID != nil {
		b.set("director_id", nullableString(p.DirectorID))
	}
	if p.CastIDs != nil {
		b.set("cast_ids", pq.Array(nonNil(*p.CastIDs)))
	}
	if p.ImdbRating != nil {
		b.set("imdb_rating", *p.ImdbRating)
	}
	if p.ReleaseDate != nil {
		b.set("release_date", *p.ReleaseDate)
	}
	if p.Runtime != nil {
		b.set("runtime", *p.Runtime)
	}
	if p.Synopsis != nil {
		b.set("synopsis", *p.Synopsis)
	}
	if p.CoverPhoto != nil {
		b.set("cover_photo", *p.CoverPhoto)
	}
	if p.Trivia != nil {
		b.set("trivia", pq.Array(nonNil(*p.Trivia)))
	}
	if p.Goofs != nil {
		b.set("goofs", pq.Array(nonNil(*p.Goofs)))
	}
	if p.Soundtrack != nil {
		b.set("soundtrack", *p.Soundtrack)
	}
	if p.AgeRating != nil {
		b.set("age_rating", *p.AgeRating)
	}
	if p.ParentalGuidance != nil {
		b.set("parental_guidance", *p.ParentalGuidance)
	}
	if p.CountryOfOrigin != nil {
		b.set("country_of_origin", *p.CountryOfOrigin)
	}
	if p.Language != nil {
		b.set("language", *p.Language)
	}
	if p.Keywords != nil {
		b.set("keywords", pq.Array(nonNil(*p.Keywords)))
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := b.build("movies", id, "updated_at = NOW()")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, movieNotFound)
	}
	if err := expectAffected(res, movieNotFound); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a movie. Its reviews are left in place.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return translate(err, movieNotFound)
	}
	return expectAffected(res, movieNotFound)
}

// AppendReview records a new review on the movie together with the updated
// average. This is the only write path for average_rating and review_ids.
func (r *MovieRepository) AppendReview(ctx context.Context, movieID, reviewID string, average float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE movies
		SET review_ids = array_append(review_ids, $2), average_rating = $3, updated_at = NOW()
		WHERE id = $1
	`, movieID, reviewID, average)
	if err != nil {
		return translate(err, movieNotFound)
	}
	return expectAffected(res, movieNotFound)
}

// SetSimilarTitles replaces the movie's similar-title set. This is the only
// write path for similar_titles.
func (r *MovieRepository) SetSimilarTitles(ctx context.Context, movieID string, ids []string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE movies SET similar_titles = $2, updated_at = NOW() WHERE id = $1
	`, movieID, pq.Array(nonNil(ids)))
	if err != nil {
		return translate(err, movieNotFound)
	}
	return expectAffected(res, movieNotFound)
}
