package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/models"
)

// ListPeople returns a page of actors, directors and crew.
// @Summary List people
// @Tags people
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} Envelope
// @Router /actor-director-crew [get]
func (h *Handler) ListPeople(c fiber.Ctx) error {
	result, err := h.svc.People.ListPeople(c.Context(), fiber.Query(c, "page", 1), fiber.Query(c, "limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "people retrieved", result)
}

func (h *Handler) CreatePerson(c fiber.Ctx) error {
	var req models.CreatePersonRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := h.svc.People.CreatePerson(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "person created", p)
}

// GetPerson returns a person. Each lookup counts as a search.
func (h *Handler) GetPerson(c fiber.Ctx) error {
	p, err := h.svc.People.GetPerson(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "person retrieved", p)
}

func (h *Handler) UpdatePerson(c fiber.Ctx) error {
	var patch models.PersonPatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, err)
	}
	p, err := h.svc.People.UpdatePerson(c.Context(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "person updated", p)
}

func (h *Handler) DeletePerson(c fiber.Ctx) error {
	if err := h.svc.People.DeletePerson(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "person deleted", nil)
}

func (h *Handler) AddToFilmography(c fiber.Ctx) error {
	var req models.ListMovieRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := h.svc.People.AddToFilmography(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "filmography updated", p)
}
