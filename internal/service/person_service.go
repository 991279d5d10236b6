package service

import (
	"context"

	"github.com/redis/go-redis/v9"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

// PersonService handles actors, directors and crew.
type PersonService struct {
	people PersonStore
	movies MovieStore
	cache  cacheFlusher
}

// NewPersonService creates a new PersonService. Renaming or removing a
// person changes recommendation matches, so those writes flush the cache.
func NewPersonService(people PersonStore, movies MovieStore, rdb *redis.Client) *PersonService {
	return &PersonService{people: people, movies: movies, cache: recommendationCache{rdb: rdb}}
}

func (s *PersonService) CreatePerson(ctx context.Context, req models.CreatePersonRequest) (*models.Person, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p := &models.Person{
		Name:        req.Name,
		Biography:   req.Biography,
		Filmography: req.Filmography,
		Awards:      req.Awards,
		Photos:      req.Photos,
	}
	if err := s.people.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPerson returns a person and counts the lookup towards searchedTimes.
func (s *PersonService) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	return s.people.GetAndCountSearch(ctx, id)
}

func (s *PersonService) ListPeople(ctx context.Context, page, limit int) (*models.PersonListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.people.List(ctx, page, limit)
}

func (s *PersonService) UpdatePerson(ctx context.Context, id string, p models.PersonPatch) (*models.Person, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	person, err := s.people.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		s.cache.flush(ctx)
	}
	return person, nil
}

func (s *PersonService) DeletePerson(ctx context.Context, id string) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.flush(ctx)
	return nil
}

// AddToFilmography links an existing movie to a person.
func (s *PersonService) AddToFilmography(ctx context.Context, id string, req models.ListMovieRequest) (*models.Person, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	ok, err := s.movies.Exists(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("movie not found")
	}
	return s.people.AddToFilmography(ctx, id, req.MovieID)
}
