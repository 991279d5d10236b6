package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
)

type countingCache struct {
	mu      sync.Mutex
	flushes int
}

func (c *countingCache) flush(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}

type fakeListStore struct {
	mu    sync.Mutex
	lists map[string]*models.List
}

func newFakeListStore() *fakeListStore {
	return &fakeListStore{lists: make(map[string]*models.List)}
}

func (s *fakeListStore) get(id string) (*models.List, error) {
	l, ok := s.lists[id]
	if !ok {
		return nil, apperr.NotFound("list not found")
	}
	return l, nil
}

func copyList(l *models.List) *models.List {
	cp := *l
	cp.Movies = append([]string{}, l.Movies...)
	cp.Followers = append([]string{}, l.Followers...)
	return &cp
}

func (s *fakeListStore) Create(_ context.Context, l *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.NewString()
	if l.Movies == nil {
		l.Movies = []string{}
	}
	l.Followers = []string{}
	s.lists[l.ID] = copyList(l)
	return nil
}

func (s *fakeListStore) GetByID(_ context.Context, id string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return copyList(l), nil
}

func (s *fakeListStore) ListForUser(_ context.Context, userID string) ([]models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.List, 0)
	for _, l := range s.lists {
		if l.OwnerID == userID || contains(l.Followers, userID) {
			out = append(out, *copyList(l))
		}
	}
	return out, nil
}

func (s *fakeListStore) AddMovie(_ context.Context, id, movieID string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !contains(l.Movies, movieID) {
		l.Movies = append(l.Movies, movieID)
	}
	return copyList(l), nil
}

func (s *fakeListStore) RemoveMovie(_ context.Context, id, movieID string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	l.Movies = without(l.Movies, movieID)
	return copyList(l), nil
}

func (s *fakeListStore) AddFollower(_ context.Context, id, userID string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !contains(l.Followers, userID) {
		l.Followers = append(l.Followers, userID)
	}
	return copyList(l), nil
}

func (s *fakeListStore) RemoveFollower(_ context.Context, id, userID string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.get(id)
	if err != nil {
		return nil, err
	}
	l.Followers = without(l.Followers, userID)
	return copyList(l), nil
}

func (s *fakeListStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.get(id); err != nil {
		return err
	}
	delete(s.lists, id)
	return nil
}

type fakeForumStore struct {
	mu     sync.Mutex
	forums map[string]*models.Forum
	posts  map[string]*models.Post
}

func newFakeForumStore() *fakeForumStore {
	return &fakeForumStore{
		forums: make(map[string]*models.Forum),
		posts:  make(map[string]*models.Post),
	}
}

func (s *fakeForumStore) forum(id string) (*models.Forum, error) {
	f, ok := s.forums[id]
	if !ok {
		return nil, apperr.NotFound("forum not found")
	}
	return f, nil
}

func copyForum(f *models.Forum) *models.Forum {
	cp := *f
	cp.Members = append([]string{}, f.Members...)
	return &cp
}

func copyPost(p *models.Post) *models.Post {
	cp := *p
	cp.Upvotes = append([]string{}, p.Upvotes...)
	cp.Downvotes = append([]string{}, p.Downvotes...)
	return &cp
}

func (s *fakeForumStore) CreateForum(_ context.Context, f *models.Forum) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = uuid.NewString()
	f.Moderators = []string{f.CreatedBy}
	f.Members = []string{f.CreatedBy}
	s.forums[f.ID] = copyForum(f)
	return nil
}

func (s *fakeForumStore) GetForum(_ context.Context, id string) (*models.Forum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.forum(id)
	if err != nil {
		return nil, err
	}
	return copyForum(f), nil
}

func (s *fakeForumStore) ListForums(context.Context) ([]models.Forum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Forum, 0, len(s.forums))
	for _, f := range s.forums {
		out = append(out, *copyForum(f))
	}
	return out, nil
}

func (s *fakeForumStore) UpdateForum(_ context.Context, id string, p models.ForumPatch) (*models.Forum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.forum(id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	return copyForum(f), nil
}

func (s *fakeForumStore) DeleteForum(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.forum(id); err != nil {
		return err
	}
	delete(s.forums, id)
	for pid, p := range s.posts {
		if p.ForumID == id {
			delete(s.posts, pid)
		}
	}
	return nil
}

func (s *fakeForumStore) AddMember(_ context.Context, id, userID string) (*models.Forum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.forum(id)
	if err != nil {
		return nil, err
	}
	if !contains(f.Members, userID) {
		f.Members = append(f.Members, userID)
	}
	return copyForum(f), nil
}

func (s *fakeForumStore) RemoveMember(_ context.Context, id, userID string) (*models.Forum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.forum(id)
	if err != nil {
		return nil, err
	}
	f.Members = without(f.Members, userID)
	return copyForum(f), nil
}

func (s *fakeForumStore) CreatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	p.Upvotes = []string{}
	p.Downvotes = []string{}
	s.posts[p.ID] = copyPost(p)
	return nil
}

func (s *fakeForumStore) GetPost(_ context.Context, forumID, postID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok || p.ForumID != forumID {
		return nil, apperr.NotFound("post not found")
	}
	return copyPost(p), nil
}

func (s *fakeForumStore) ListPosts(_ context.Context, forumID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if p.ForumID == forumID {
			out = append(out, *copyPost(p))
		}
	}
	return out, nil
}

func (s *fakeForumStore) UpdatePost(_ context.Context, postID string, patch models.PostPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return apperr.NotFound("post not found")
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	return nil
}

func (s *fakeForumStore) DeletePost(_ context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return apperr.NotFound("post not found")
	}
	delete(s.posts, postID)
	return nil
}

func (s *fakeForumStore) Vote(_ context.Context, postID, userID, direction string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, apperr.NotFound("post not found")
	}
	p.Upvotes = without(p.Upvotes, userID)
	p.Downvotes = without(p.Downvotes, userID)
	if direction == models.VoteDown {
		p.Downvotes = append(p.Downvotes, userID)
	} else {
		p.Upvotes = append(p.Upvotes, userID)
	}
	return copyPost(p), nil
}

type fakeArticleStore struct {
	mu       sync.Mutex
	articles map[string]*models.Article
	listed   models.ArticleListParams
	searched string
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{articles: make(map[string]*models.Article)}
}

func (s *fakeArticleStore) Create(_ context.Context, a *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	cp := *a
	s.articles[a.ID] = &cp
	return nil
}

func (s *fakeArticleStore) GetByID(_ context.Context, id string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, apperr.NotFound("article not found")
	}
	cp := *a
	return &cp, nil
}

func (s *fakeArticleStore) List(_ context.Context, p models.ArticleListParams) (*models.ArticleListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listed = p
	out := make([]models.Article, 0)
	for _, a := range s.articles {
		if a.IsPublished {
			out = append(out, *a)
		}
	}
	return &models.ArticleListResponse{Data: out, Pagination: models.NewPagination(len(out), p.Page, p.Limit)}, nil
}

func (s *fakeArticleStore) Search(_ context.Context, query string, page, limit int) (*models.ArticleListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searched = query
	return &models.ArticleListResponse{Data: []models.Article{}, Pagination: models.NewPagination(0, page, limit)}, nil
}

func (s *fakeArticleStore) Update(_ context.Context, id string, p models.ArticlePatch) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, apperr.NotFound("article not found")
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.IsPublished != nil {
		a.IsPublished = *p.IsPublished
	}
	cp := *a
	return &cp, nil
}

func (s *fakeArticleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return apperr.NotFound("article not found")
	}
	delete(s.articles, id)
	return nil
}

func (s *fakeArticleStore) IncrementViews(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return 0, apperr.NotFound("article not found")
	}
	a.Views++
	return a.Views, nil
}

type fakeAnalyticsStore struct {
	limits []int
}

func (s *fakeAnalyticsStore) MostLikedPosts(_ context.Context, limit int) ([]models.LikedPost, error) {
	s.limits = append(s.limits, limit)
	return []models.LikedPost{}, nil
}

func (s *fakeAnalyticsStore) MostLikedReviews(_ context.Context, limit int) ([]models.LikedReview, error) {
	s.limits = append(s.limits, limit)
	return []models.LikedReview{}, nil
}

func (s *fakeAnalyticsStore) ForumsByMembers(_ context.Context, limit int) ([]models.ForumStat, error) {
	s.limits = append(s.limits, limit)
	return []models.ForumStat{}, nil
}

func (s *fakeAnalyticsStore) ForumsByPosts(_ context.Context, limit int) ([]models.ForumStat, error) {
	s.limits = append(s.limits, limit)
	return []models.ForumStat{}, nil
}

func (s *fakeAnalyticsStore) MostPopularMovies(_ context.Context, limit int) ([]models.PopularMovie, error) {
	s.limits = append(s.limits, limit)
	return []models.PopularMovie{}, nil
}

func without(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
