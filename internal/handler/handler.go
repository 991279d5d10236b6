package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/scheduler"
	"movie-recommendation-service/internal/service"
)

// ServiceName is reported by the health check.
const ServiceName = "movie-recommendation-service"

// FeedReader reads a user's dashboard notifications.
type FeedReader interface {
	List(ctx context.Context, userID string, limit int) ([]models.DashboardNotification, error)
}

// ReminderRunner triggers a reminder pass on demand.
type ReminderRunner interface {
	RunOnce(ctx context.Context) (scheduler.RunResult, error)
}

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Users           *service.UserService
	Movies          *service.MovieService
	Reviews         *service.ReviewService
	Similarity      *service.SimilarityService
	Recommendations *service.RecommendationService
	Reminders       *service.ReminderService
	People          *service.PersonService
	Lists           *service.ListService
	Forums          *service.ForumService
	Articles        *service.ArticleService
	Admin           *service.AdminService
	Catalog         *service.CatalogService
	Feed            FeedReader
	Runner          ReminderRunner
}

// Handler serves the REST API.
type Handler struct {
	svc Services
}

// New creates a new Handler.
func New(svc Services) *Handler {
	return &Handler{svc: svc}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": ServiceName,
	})
}

// Routes mounts the API on router. authn authenticates the caller.
func (h *Handler) Routes(router fiber.Router, authn fiber.Handler) {
	admin := middleware.RequireAdmin()

	router.Get("/health", h.Health)

	users := router.Group("/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Get("/", authn, admin, h.ListUsers)
	users.Get("/:id", authn, h.GetUser)
	users.Patch("/:id", authn, h.UpdateUser)
	users.Delete("/:id", authn, h.DeleteUser)
	users.Get("/:id/recommendations", authn, h.GetRecommendations)
	users.Get("/:id/notifications", authn, h.GetNotifications)
	users.Get("/:id/lists", authn, h.ListUserLists)
	users.Post("/:id/lists", authn, h.CreateList)
	users.Post("/:id/lists/:listId/follow", authn, h.FollowList)

	lists := router.Group("/lists")
	lists.Get("/:listId", h.GetList)
	lists.Delete("/:listId", authn, h.DeleteList)
	lists.Post("/:listId/movies", authn, h.AddListMovie)
	lists.Delete("/:listId/movies/:movieId", authn, h.RemoveListMovie)
	lists.Post("/:listId/unfollow", authn, h.UnfollowList)

	movies := router.Group("/movies")
	movies.Get("/", h.ListMovies)
	movies.Post("/", authn, admin, h.CreateMovie)
	movies.Get("/:id", h.GetMovie)
	movies.Patch("/:id", authn, admin, h.UpdateMovie)
	movies.Delete("/:id", authn, admin, h.DeleteMovie)
	movies.Get("/:id/reviews", h.ListReviews)
	movies.Post("/:id/reviews", authn, h.AddReview)
	movies.Get("/:id/similar", h.GetSimilarTitles)
	movies.Post("/:id/similar/refresh", authn, h.RefreshSimilarTitles)

	router.Post("/reviews/:id/like", authn, h.LikeReview)
	router.Delete("/reviews/:id/like", authn, h.UnlikeReview)

	people := router.Group("/actor-director-crew")
	people.Get("/", h.ListPeople)
	people.Post("/", authn, admin, h.CreatePerson)
	people.Get("/:id", h.GetPerson)
	people.Patch("/:id", authn, admin, h.UpdatePerson)
	people.Delete("/:id", authn, admin, h.DeletePerson)
	people.Post("/:id/filmography", authn, admin, h.AddToFilmography)

	reminders := router.Group("/reminders", authn)
	reminders.Get("/", h.ListReminders)
	reminders.Post("/", h.CreateReminder)
	reminders.Patch("/:id", h.UpdateReminder)
	reminders.Delete("/:id", h.DeleteReminder)

	forums := router.Group("/forums")
	forums.Get("/", h.ListForums)
	forums.Post("/", authn, admin, h.CreateForum)
	forums.Get("/:forumId", h.GetForum)
	forums.Patch("/:forumId", authn, admin, h.UpdateForum)
	forums.Delete("/:forumId", authn, admin, h.DeleteForum)
	forums.Post("/:forumId/join", authn, h.JoinForum)
	forums.Post("/:forumId/leave", authn, h.LeaveForum)
	forums.Get("/:forumId/posts", h.ListPosts)
	forums.Post("/:forumId/posts", authn, h.CreatePost)
	forums.Get("/:forumId/posts/:postId", h.GetPost)
	forums.Patch("/:forumId/posts/:postId", authn, h.UpdatePost)
	forums.Delete("/:forumId/posts/:postId", authn, h.DeletePost)
	forums.Post("/:forumId/posts/:postId/upvote", authn, h.Upvote)
	forums.Post("/:forumId/posts/:postId/downvote", authn, h.Downvote)

	articles := router.Group("/articles")
	articles.Get("/", h.ListArticles)
	articles.Get("/search", h.SearchArticles)
	articles.Post("/", authn, admin, h.CreateArticle)
	articles.Get("/:id", h.GetArticle)
	articles.Patch("/:id", authn, h.UpdateArticle)
	articles.Delete("/:id", authn, h.DeleteArticle)
	articles.Post("/:id/view", h.RecordArticleView)

	adm := router.Group("/admin", authn, admin)
	adm.Get("/most-liked-posts", h.MostLikedPosts)
	adm.Get("/most-liked-reviews", h.MostLikedReviews)
	adm.Get("/forums-with-most-members", h.ForumsWithMostMembers)
	adm.Get("/forums-with-most-posts", h.ForumsWithMostPosts)
	adm.Get("/most-popular-movies", h.MostPopularMovies)
	adm.Post("/sync", h.SyncCatalog)
	adm.Post("/reminders/run", h.RunReminders)
}
