package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/models"
)

func (h *Handler) ListUserLists(c fiber.Ctx) error {
	lists, err := h.svc.Lists.ListsForUser(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "lists retrieved", lists)
}

func (h *Handler) CreateList(c fiber.Ctx) error {
	var req models.CreateListRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	l, err := h.svc.Lists.CreateList(c.Context(), actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "list created", l)
}

func (h *Handler) GetList(c fiber.Ctx) error {
	l, err := h.svc.Lists.GetList(c.Context(), c.Params("listId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "list retrieved", l)
}

func (h *Handler) DeleteList(c fiber.Ctx) error {
	if err := h.svc.Lists.DeleteList(c.Context(), actor(c), c.Params("listId")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "list deleted", nil)
}

func (h *Handler) AddListMovie(c fiber.Ctx) error {
	var req models.ListMovieRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	l, err := h.svc.Lists.AddMovie(c.Context(), actor(c), c.Params("listId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "movie added to list", l)
}

func (h *Handler) RemoveListMovie(c fiber.Ctx) error {
	l, err := h.svc.Lists.RemoveMovie(c.Context(), actor(c), c.Params("listId"), c.Params("movieId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "movie removed from list", l)
}

// FollowList subscribes the user in the path to a list.
func (h *Handler) FollowList(c fiber.Ctx) error {
	l, err := h.svc.Lists.Follow(c.Context(), actor(c), c.Params("id"), c.Params("listId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "list followed", l)
}

func (h *Handler) UnfollowList(c fiber.Ctx) error {
	l, err := h.svc.Lists.Unfollow(c.Context(), middleware.UserID(c), c.Params("listId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "list unfollowed", l)
}
