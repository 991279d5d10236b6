package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const personNotFound = "actor/director/crew not found"

const personColumns = `id, tmdb_id, name, biography, filmography, awards, photos, searched_times, created_at`

// PersonRepository handles database operations for actors, directors and crew.
type PersonRepository struct {
	db *sql.DB
}

// NewPersonRepository creates a new PersonRepository.
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func scanPerson(row scanner) (*models.Person, error) {
	var p models.Person
	var tmdbID sql.NullInt64
	var awards []byte
	if err := row.Scan(&p.ID, &tmdbID, &p.Name, &p.Biography, pq.Array(&p.Filmography),
		&awards, pq.Array(&p.Photos), &p.SearchedTimes, &p.CreatedAt); err != nil {
		return nil, err
	}
	if tmdbID.Valid {
		id := int(tmdbID.Int64)
		p.TMDBId = &id
	}
	p.Awards = []models.Award{}
	if len(awards) > 0 {
		if err := json.Unmarshal(awards, &p.Awards); err != nil {
			return nil, fmt.Errorf("decode awards: %w", err)
		}
	}
	p.Filmography = nonNil(p.Filmography)
	p.Photos = nonNil(p.Photos)
	return &p, nil
}

func encodeAwards(awards []models.Award) ([]byte, error) {
	if awards == nil {
		awards = []models.Award{}
	}
	return json.Marshal(awards)
}

// Create inserts a person and fills in its ID.
func (r *PersonRepository) Create(ctx context.Context, p *models.Person) error {
	awards, err := encodeAwards(p.Awards)
	if err != nil {
		return err
	}
	p.ID = newID()
	p.CreatedAt = time.Now().UTC()
	p.Filmography = nonNil(p.Filmography)
	p.Photos = nonNil(p.Photos)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO people (id, tmdb_id, name, biography, filmography, awards, photos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, nullableInt(p.TMDBId), p.Name, p.Biography, pq.Array(p.Filmography), string(awards),
		pq.Array(p.Photos), p.CreatedAt)
	return translate(err, personNotFound)
}

// UpsertByTMDBId inserts or refreshes a person imported from TMDB and
// returns its internal ID.
func (r *PersonRepository) UpsertByTMDBId(ctx context.Context, tmdbID int, name string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO people (id, tmdb_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (tmdb_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, newID(), tmdbID, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert person %q: %w", name, err)
	}
	return id, nil
}

// GetByID returns a person without touching the search counter.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*models.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, personNotFound)
	}
	return p, nil
}

// GetAndCountSearch returns a person and increments its searched_times.
func (r *PersonRepository) GetAndCountSearch(ctx context.Context, id string) (*models.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, `
		UPDATE people SET searched_times = searched_times + 1
		WHERE id = $1
		RETURNING `+personColumns, id))
	if err != nil {
		return nil, translate(err, personNotFound)
	}
	return p, nil
}

// List returns a page of people ordered by name.
func (r *PersonRepository) List(ctx context.Context, page, limit int) (*models.PersonListResponse, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count people: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM people ORDER BY name, id LIMIT $1 OFFSET $2`,
		limit, offset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	people := make([]models.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.PersonListResponse{
		Data:       people,
		Pagination: models.NewPagination(total, page, limit),
	}, nil
}

// Update applies a patch and returns the updated person.
func (r *PersonRepository) Update(ctx context.Context, id string, p models.PersonPatch) (*models.Person, error) {
	var b updateBuilder
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Biography != nil {
		b.set("biography", *p.Biography)
	}
	if p.Awards != nil {
		awards, err := encodeAwards(*p.Awards)
		if err != nil {
			return nil, err
		}
		b.set("awards", string(awards))
	}
	if p.Photos != nil {
		b.set("photos", pq.Array(nonNil(*p.Photos)))
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := b.build("people", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, personNotFound)
	}
	if err := expectAffected(res, personNotFound); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a person.
func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return translate(err, personNotFound)
	}
	return expectAffected(res, personNotFound)
}

// AddToFilmography appends a movie to the person's filmography once.
func (r *PersonRepository) AddToFilmography(ctx context.Context, id, movieID string) (*models.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, `
		UPDATE people
		SET filmography = CASE WHEN $2 = ANY(filmography) THEN filmography ELSE array_append(filmography, $2) END
		WHERE id = $1
		RETURNING `+personColumns, id, movieID))
	if err != nil {
		return nil, translate(err, personNotFound)
	}
	return p, nil
}
