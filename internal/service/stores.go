package service

import (
	"context"
	"time"

	"movie-recommendation-service/internal/models"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanModify reports whether the actor owns ownerID or is an admin.
func (a Actor) CanModify(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}

// MovieStore is the catalog persistence used by the services.
type MovieStore interface {
	Create(ctx context.Context, m *models.Movie) error
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	GetDetail(ctx context.Context, id string) (*models.MovieDetail, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]models.Movie, error)
	ListAllDetails(ctx context.Context) ([]models.MovieDetail, error)
	List(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error)
	Update(ctx context.Context, id string, p models.MoviePatch) (*models.Movie, error)
	Delete(ctx context.Context, id string) error
	AppendReview(ctx context.Context, movieID, reviewID string, average float64) error
	SetSimilarTitles(ctx context.Context, movieID string, ids []string) error
	UpsertByTMDBId(ctx context.Context, m *models.Movie) (string, error)
}

// ReviewStore persists reviews.
type ReviewStore interface {
	Create(ctx context.Context, rv *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByMovie(ctx context.Context, movieID string) ([]models.Review, error)
	AddLike(ctx context.Context, reviewID, userID string) (*models.Review, error)
	RemoveLike(ctx context.Context, reviewID, userID string) (*models.Review, error)
}

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, p models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// ReminderStore persists release reminders.
type ReminderStore interface {
	Create(ctx context.Context, rm *models.Reminder) error
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reminder, error)
	Update(ctx context.Context, rm *models.Reminder) error
	Delete(ctx context.Context, id string) error
	FindDue(ctx context.Context, day time.Time) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id string) error
}

// PersonStore persists actors, directors and crew.
type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	GetByID(ctx context.Context, id string) (*models.Person, error)
	GetAndCountSearch(ctx context.Context, id string) (*models.Person, error)
	List(ctx context.Context, page, limit int) (*models.PersonListResponse, error)
	Update(ctx context.Context, id string, p models.PersonPatch) (*models.Person, error)
	Delete(ctx context.Context, id string) error
	AddToFilmography(ctx context.Context, id, movieID string) (*models.Person, error)
	UpsertByTMDBId(ctx context.Context, tmdbID int, name string) (string, error)
}

// ListStore persists user movie lists.
type ListStore interface {
	Create(ctx context.Context, l *models.List) error
	GetByID(ctx context.Context, id string) (*models.List, error)
	ListForUser(ctx context.Context, userID string) ([]models.List, error)
	AddMovie(ctx context.Context, id, movieID string) (*models.List, error)
	RemoveMovie(ctx context.Context, id, movieID string) (*models.List, error)
	AddFollower(ctx context.Context, id, userID string) (*models.List, error)
	RemoveFollower(ctx context.Context, id, userID string) (*models.List, error)
	Delete(ctx context.Context, id string) error
}

// ForumStore persists forums and posts.
type ForumStore interface {
	CreateForum(ctx context.Context, f *models.Forum) error
	GetForum(ctx context.Context, id string) (*models.Forum, error)
	ListForums(ctx context.Context) ([]models.Forum, error)
	UpdateForum(ctx context.Context, id string, p models.ForumPatch) (*models.Forum, error)
	DeleteForum(ctx context.Context, id string) error
	AddMember(ctx context.Context, id, userID string) (*models.Forum, error)
	RemoveMember(ctx context.Context, id, userID string) (*models.Forum, error)
	CreatePost(ctx context.Context, p *models.Post) error
	GetPost(ctx context.Context, forumID, postID string) (*models.Post, error)
	ListPosts(ctx context.Context, forumID string) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID string, p models.PostPatch) error
	DeletePost(ctx context.Context, postID string) error
	Vote(ctx context.Context, postID, userID, direction string) (*models.Post, error)
}

// ArticleStore persists editorial articles.
type ArticleStore interface {
	Create(ctx context.Context, a *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context, p models.ArticleListParams) (*models.ArticleListResponse, error)
	Search(ctx context.Context, query string, page, limit int) (*models.ArticleListResponse, error)
	Update(ctx context.Context, id string, p models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int, error)
}

// AnalyticsStore runs the admin leaderboard queries.
type AnalyticsStore interface {
	MostLikedPosts(ctx context.Context, limit int) ([]models.LikedPost, error)
	MostLikedReviews(ctx context.Context, limit int) ([]models.LikedReview, error)
	ForumsByMembers(ctx context.Context, limit int) ([]models.ForumStat, error)
	ForumsByPosts(ctx context.Context, limit int) ([]models.ForumStat, error)
	MostPopularMovies(ctx context.Context, limit int) ([]models.PopularMovie, error)
}
