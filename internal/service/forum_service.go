package service

import (
	"context"
	"log/slog"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

// ForumService handles forums, membership and posts.
type ForumService struct {
	forums ForumStore
}

// NewForumService creates a new ForumService.
func NewForumService(forums ForumStore) *ForumService {
	return &ForumService{forums: forums}
}

// CreateForum creates a forum with the actor as its first moderator.
func (s *ForumService) CreateForum(ctx context.Context, actor Actor, req models.CreateForumRequest) (*models.Forum, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	f := &models.Forum{Name: req.Name, Description: req.Description, CreatedBy: actor.UserID}
	if err := s.forums.CreateForum(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("forum created", "forum_id", f.ID, "name", f.Name)
	return f, nil
}

// GetForum returns a forum with its member list.
func (s *ForumService) GetForum(ctx context.Context, id string) (*models.Forum, error) {
	return s.forums.GetForum(ctx, id)
}

// ListForums returns every forum ordered by name.
func (s *ForumService) ListForums(ctx context.Context) ([]models.Forum, error) {
	return s.forums.ListForums(ctx)
}

// UpdateForum applies a partial update to a forum's name or description.
func (s *ForumService) UpdateForum(ctx context.Context, id string, p models.ForumPatch) (*models.Forum, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	return s.forums.UpdateForum(ctx, id, p)
}

// DeleteForum removes a forum and its posts.
func (s *ForumService) DeleteForum(ctx context.Context, id string) error {
	return s.forums.DeleteForum(ctx, id)
}

// Join adds userID to the forum members. Joining twice is a no-op.
func (s *ForumService) Join(ctx context.Context, id, userID string) (*models.Forum, error) {
	return s.forums.AddMember(ctx, id, userID)
}

// Leave removes userID from the forum members.
func (s *ForumService) Leave(ctx context.Context, id, userID string) (*models.Forum, error) {
	return s.forums.RemoveMember(ctx, id, userID)
}

// CreatePost adds a post to an existing forum.
func (s *ForumService) CreatePost(ctx context.Context, actor Actor, forumID string, req models.CreatePostRequest) (*models.Post, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.forums.GetForum(ctx, forumID); err != nil {
		return nil, err
	}
	p := &models.Post{ForumID: forumID, Title: req.Title, Content: req.Content, CreatedBy: actor.UserID}
	if err := s.forums.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ForumService) GetPost(ctx context.Context, forumID, postID string) (*models.Post, error) {
	return s.forums.GetPost(ctx, forumID, postID)
}

func (s *ForumService) ListPosts(ctx context.Context, forumID string) ([]models.Post, error) {
	if _, err := s.forums.GetForum(ctx, forumID); err != nil {
		return nil, err
	}
	return s.forums.ListPosts(ctx, forumID)
}

func (s *ForumService) ownedPost(ctx context.Context, actor Actor, forumID, postID string) (*models.Post, error) {
	p, err := s.forums.GetPost(ctx, forumID, postID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(p.CreatedBy) {
		return nil, apperr.Forbidden("access denied")
	}
	return p, nil
}

// UpdatePost edits a post. Only its author or an admin may do so.
func (s *ForumService) UpdatePost(ctx context.Context, actor Actor, forumID, postID string, patch models.PostPatch) (*models.Post, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if _, err := s.ownedPost(ctx, actor, forumID, postID); err != nil {
		return nil, err
	}
	if err := s.forums.UpdatePost(ctx, postID, patch); err != nil {
		return nil, err
	}
	return s.forums.GetPost(ctx, forumID, postID)
}

func (s *ForumService) DeletePost(ctx context.Context, actor Actor, forumID, postID string) error {
	if _, err := s.ownedPost(ctx, actor, forumID, postID); err != nil {
		return err
	}
	return s.forums.DeletePost(ctx, postID)
}

// Vote records an up or down vote, replacing any opposite vote by the same
// user.
func (s *ForumService) Vote(ctx context.Context, forumID, postID, userID, direction string) (*models.Post, error) {
	if direction != models.VoteUp && direction != models.VoteDown {
		return nil, apperr.Validation("invalid vote direction",
			map[string]string{"direction": "must be " + models.VoteUp + " or " + models.VoteDown})
	}
	if _, err := s.forums.GetPost(ctx, forumID, postID); err != nil {
		return nil, err
	}
	return s.forums.Vote(ctx, postID, userID, direction)
}
