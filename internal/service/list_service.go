package service

import (
	"context"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

// ListService handles user-curated movie lists.
type ListService struct {
	lists  ListStore
	movies MovieStore
}

// NewListService creates a new ListService.
func NewListService(lists ListStore, movies MovieStore) *ListService {
	return &ListService{lists: lists, movies: movies}
}

// CreateList creates a list owned by ownerID.
func (s *ListService) CreateList(ctx context.Context, actor Actor, ownerID string, req models.CreateListRequest) (*models.List, error) {
	if !actor.CanModify(ownerID) {
		return nil, apperr.Forbidden("access denied")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	l := &models.List{Name: req.Name, OwnerID: ownerID, Movies: req.Movies}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ListService) GetList(ctx context.Context, id string) (*models.List, error) {
	return s.lists.GetByID(ctx, id)
}

// ListsForUser returns the lists a user owns or follows.
func (s *ListService) ListsForUser(ctx context.Context, userID string) ([]models.List, error) {
	return s.lists.ListForUser(ctx, userID)
}

func (s *ListService) owned(ctx context.Context, actor Actor, id string) (*models.List, error) {
	l, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(l.OwnerID) {
		return nil, apperr.Forbidden("access denied")
	}
	return l, nil
}

// AddMovie appends an existing movie to a list the actor owns.
func (s *ListService) AddMovie(ctx context.Context, actor Actor, id string, req models.ListMovieRequest) (*models.List, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	ok, err := s.movies.Exists(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("movie not found")
	}
	return s.lists.AddMovie(ctx, id, req.MovieID)
}

func (s *ListService) RemoveMovie(ctx context.Context, actor Actor, id, movieID string) (*models.List, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.lists.RemoveMovie(ctx, id, movieID)
}

// Follow adds userID to the followers of a list. Following twice is a no-op.
func (s *ListService) Follow(ctx context.Context, actor Actor, userID, id string) (*models.List, error) {
	if !actor.CanModify(userID) {
		return nil, apperr.Forbidden("access denied")
	}
	return s.lists.AddFollower(ctx, id, userID)
}

func (s *ListService) Unfollow(ctx context.Context, userID, id string) (*models.List, error) {
	return s.lists.RemoveFollower(ctx, id, userID)
}

func (s *ListService) DeleteList(ctx context.Context, actor Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.lists.Delete(ctx, id)
}
