package service

import (
	"context"

	"movie-recommendation-service/internal/models"
)

// LeaderboardSize is the number of entries in each admin leaderboard.
const LeaderboardSize = 10

// AdminService serves the admin analytics leaderboards.
type AdminService struct {
	analytics AnalyticsStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(analytics AnalyticsStore) *AdminService {
	return &AdminService{analytics: analytics}
}

func (s *AdminService) MostLikedPosts(ctx context.Context) ([]models.LikedPost, error) {
	return s.analytics.MostLikedPosts(ctx, LeaderboardSize)
}

func (s *AdminService) MostLikedReviews(ctx context.Context) ([]models.LikedReview, error) {
	return s.analytics.MostLikedReviews(ctx, LeaderboardSize)
}

func (s *AdminService) ForumsWithMostMembers(ctx context.Context) ([]models.ForumStat, error) {
	return s.analytics.ForumsByMembers(ctx, LeaderboardSize)
}

func (s *AdminService) ForumsWithMostPosts(ctx context.Context) ([]models.ForumStat, error) {
	return s.analytics.ForumsByPosts(ctx, LeaderboardSize)
}

func (s *AdminService) MostPopularMovies(ctx context.Context) ([]models.PopularMovie, error) {
	return s.analytics.MostPopularMovies(ctx, LeaderboardSize)
}
