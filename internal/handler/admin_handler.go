package handler

import (
	"github.com/gofiber/fiber/v3"
)

func (h *Handler) MostLikedPosts(c fiber.Ctx) error {
	posts, err := h.svc.Admin.MostLikedPosts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "most liked posts", posts)
}

func (h *Handler) MostLikedReviews(c fiber.Ctx) error {
	reviews, err := h.svc.Admin.MostLikedReviews(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "most liked reviews", reviews)
}

func (h *Handler) ForumsWithMostMembers(c fiber.Ctx) error {
	forums, err := h.svc.Admin.ForumsWithMostMembers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "forums with most members", forums)
}

func (h *Handler) ForumsWithMostPosts(c fiber.Ctx) error {
	forums, err := h.svc.Admin.ForumsWithMostPosts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "forums with most posts", forums)
}

func (h *Handler) MostPopularMovies(c fiber.Ctx) error {
	movies, err := h.svc.Admin.MostPopularMovies(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "most popular movies", movies)
}

// SyncCatalog imports movies and people from TMDB.
// @Summary Sync catalog from TMDB
// @Tags admin
// @Produce json
// @Param pages query int false "Discover pages to import" default(1)
// @Success 200 {object} Envelope
// @Failure 412 {object} Envelope "TMDB not configured"
// @Router /admin/sync [post]
func (h *Handler) SyncCatalog(c fiber.Ctx) error {
	result, err := h.svc.Catalog.SyncCatalog(c.Context(), fiber.Query(c, "pages", 1))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "catalog synced", result)
}

// RunReminders sends today's due reminders without waiting for the
// scheduler.
func (h *Handler) RunReminders(c fiber.Ctx) error {
	result, err := h.svc.Runner.RunOnce(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "reminders processed", result)
}
