package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/models"
)

// Register creates an account.
// @Summary Register
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Account"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /users/register [post]
func (h *Handler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	resp, err := h.svc.Users.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "user registered successfully", resp)
}

// Login signs a user in.
// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /users/login [post]
func (h *Handler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	resp, err := h.svc.Users.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "login successful", resp)
}

func (h *Handler) ListUsers(c fiber.Ctx) error {
	users, err := h.svc.Users.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "users retrieved", users)
}

func (h *Handler) GetUser(c fiber.Ctx) error {
	u, err := h.svc.Users.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "user retrieved", u)
}

func (h *Handler) UpdateUser(c fiber.Ctx) error {
	var patch models.UserPatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, err)
	}
	u, err := h.svc.Users.UpdateUser(c.Context(), actor(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "user updated", u)
}

func (h *Handler) DeleteUser(c fiber.Ctx) error {
	if err := h.svc.Users.DeleteUser(c.Context(), actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "user deleted", nil)
}

// GetRecommendations returns the caller's personalized recommendations.
// @Summary Personalized recommendations
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 412 {object} Envelope "movie preferences not set"
// @Router /users/{id}/recommendations [get]
func (h *Handler) GetRecommendations(c fiber.Ctx) error {
	id := c.Params("id")
	if err := requireSelf(c, id); err != nil {
		return respondError(c, err)
	}
	movies, err := h.svc.Recommendations.GetPersonalizedRecommendations(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "recommendations retrieved", movies)
}

// GetNotifications returns the caller's dashboard feed.
func (h *Handler) GetNotifications(c fiber.Ctx) error {
	id := c.Params("id")
	if err := requireSelf(c, id); err != nil {
		return respondError(c, err)
	}
	items, err := h.svc.Feed.List(c.Context(), id, fiber.Query(c, "limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "notifications retrieved", items)
}
