package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/models"
)

// ListMovies returns a paginated list of movies.
// @Summary List movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Param sort_by query string false "Sort field" Enums(release_date,title,imdb_rating,average_rating) default(release_date)
// @Param order query string false "Sort order" Enums(asc,desc) default(desc)
// @Param genre query string false "Genre filter"
// @Success 200 {object} Envelope
// @Router /movies [get]
func (h *Handler) ListMovies(c fiber.Ctx) error {
	params := models.MovieListParams{
		Page:     fiber.Query(c, "page", 1),
		PageSize: fiber.Query(c, "page_size", 20),
		SortBy:   c.Query("sort_by", "release_date"),
		Order:    c.Query("order", "desc"),
		Genre:    c.Query("genre"),
	}

	result, err := h.svc.Movies.ListMovies(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "movies retrieved", result)
}

// GetMovie returns a movie with director and cast names.
// @Summary Get movie detail
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /movies/{id} [get]
func (h *Handler) GetMovie(c fiber.Ctx) error {
	movie, err := h.svc.Movies.GetMovie(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "movie retrieved", movie)
}

func (h *Handler) CreateMovie(c fiber.Ctx) error {
	var req models.CreateMovieRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	movie, err := h.svc.Movies.CreateMovie(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "movie created", movie)
}

func (h *Handler) UpdateMovie(c fiber.Ctx) error {
	var patch models.MoviePatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, err)
	}
	movie, err := h.svc.Movies.UpdateMovie(c.Context(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "movie updated", movie)
}

func (h *Handler) DeleteMovie(c fiber.Ctx) error {
	if err := h.svc.Movies.DeleteMovie(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "movie deleted", nil)
}

func (h *Handler) ListReviews(c fiber.Ctx) error {
	reviews, err := h.svc.Reviews.ListReviews(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "reviews retrieved", reviews)
}

// AddReview rates a movie and updates its average rating.
// @Summary Add review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param body body models.CreateReviewRequest true "Review"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /movies/{id}/reviews [post]
func (h *Handler) AddReview(c fiber.Ctx) error {
	var req models.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	review, err := h.svc.Reviews.AddReview(c.Context(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "review added successfully", review)
}

func (h *Handler) LikeReview(c fiber.Ctx) error {
	review, err := h.svc.Reviews.LikeReview(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "review liked", review)
}

func (h *Handler) UnlikeReview(c fiber.Ctx) error {
	review, err := h.svc.Reviews.UnlikeReview(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "review unliked", review)
}

func (h *Handler) GetSimilarTitles(c fiber.Ctx) error {
	movies, err := h.svc.Similarity.GetSimilarTitles(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "similar titles retrieved", movies)
}

// RefreshSimilarTitles recomputes a movie's similar titles.
// @Summary Refresh similar titles
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /movies/{id}/similar/refresh [post]
func (h *Handler) RefreshSimilarTitles(c fiber.Ctx) error {
	ids, err := h.svc.Similarity.RefreshSimilarTitles(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "similar titles updated", fiber.Map{"similarTitles": ids})
}
