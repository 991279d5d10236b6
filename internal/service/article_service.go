package service

import (
	"context"
	"strings"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

// ArticleService handles editorial articles.
type ArticleService struct {
	articles ArticleStore
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles ArticleStore) *ArticleService {
	return &ArticleService{articles: articles}
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func (s *ArticleService) CreateArticle(ctx context.Context, actor Actor, req models.CreateArticleRequest) (*models.Article, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	a := &models.Article{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		AuthorID:    actor.UserID,
		CoverImage:  req.CoverImage,
		IsPublished: published,
	}
	if err := s.articles.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ArticleService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// ListArticles returns published articles, newest first, optionally
// filtered by category and tags.
func (s *ArticleService) ListArticles(ctx context.Context, p models.ArticleListParams) (*models.ArticleListResponse, error) {
	p.Page, p.Limit = pageBounds(p.Page, p.Limit)
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	p.Tags = tags
	return s.articles.List(ctx, p)
}

// SearchArticles matches query against titles and content, ignoring case.
func (s *ArticleService) SearchArticles(ctx context.Context, query string, page, limit int) (*models.ArticleListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("search query is required", map[string]string{"query": "is required"})
	}
	page, limit = pageBounds(page, limit)
	return s.articles.Search(ctx, query, page, limit)
}

func (s *ArticleService) owned(ctx context.Context, actor Actor, id string) error {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(a.AuthorID) {
		return apperr.Forbidden("access denied")
	}
	return nil
}

// UpdateArticle edits an article. Only its author or an admin may do so.
func (s *ArticleService) UpdateArticle(ctx context.Context, actor Actor, id string, p models.ArticlePatch) (*models.Article, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	if err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.articles.Update(ctx, id, p)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, actor Actor, id string) error {
	if err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.articles.Delete(ctx, id)
}

// RecordView increments the view counter and returns the new total.
func (s *ArticleService) RecordView(ctx context.Context, id string) (int, error) {
	return s.articles.IncrementViews(ctx, id)
}
