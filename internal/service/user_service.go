package service

import (
	"context"
	"log/slog"
	"strings"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/auth"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

var errInvalidCredentials = apperr.Unauthorized("invalid credentials")

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	IssueToken(userID, role string) (string, error)
}

// UserService handles accounts, sign-in and profile updates.
type UserService struct {
	users      UserStore
	tokens     TokenIssuer
	bcryptCost int
	recs       *RecommendationService
}

// NewUserService creates a new UserService. recs may be nil.
func NewUserService(users UserStore, tokens TokenIssuer, bcryptCost int, recs *RecommendationService) *UserService {
	return &UserService{users: users, tokens: tokens, bcryptCost: bcryptCost, recs: recs}
}

// Register creates an account and signs it in.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("failed to register user", err)
	}

	u := &models.User{
		Username:         strings.TrimSpace(req.Username),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:     hash,
		Role:             models.RoleUser,
		ProfilePhoto:     req.ProfilePhoto,
		MoviePreferences: req.MoviePreferences,
		PersonalWishlist: req.PersonalWishlist,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}
	slog.Info("user registered", "user_id", u.ID)
	return &models.AuthResponse{User: u, Token: token}, nil
}

// Login verifies credentials and returns a fresh token.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !auth.ComparePassword(u.PasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.IssueToken(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}
	return &models.AuthResponse{User: u, Token: token}, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// UpdateUser applies a profile update. Only the user or an admin may do so.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id string, p models.UserPatch) (*models.User, error) {
	if !actor.CanModify(id) {
		return nil, apperr.Forbidden("access denied")
	}
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &email
	}

	u, err := s.users.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if p.MoviePreferences != nil && s.recs != nil {
		s.recs.Forget(ctx, id)
	}
	return u, nil
}

// DeleteUser removes an account. Only the user or an admin may do so.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if !actor.CanModify(id) {
		return apperr.Forbidden("access denied")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if s.recs != nil {
		s.recs.Forget(ctx, id)
	}
	return nil
}
