package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/models"
)

func (h *Handler) ListReminders(c fiber.Ctx) error {
	reminders, err := h.svc.Reminders.ListReminders(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "reminders retrieved", reminders)
}

// CreateReminder schedules a notification for the day before a movie's
// release.
// @Summary Create reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param body body models.CreateReminderRequest true "Reminder"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope "movie has already been released"
// @Failure 404 {object} Envelope
// @Router /reminders [post]
func (h *Handler) CreateReminder(c fiber.Ctx) error {
	var req models.CreateReminderRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	r, err := h.svc.Reminders.CreateReminder(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "reminder set successfully", r)
}

func (h *Handler) UpdateReminder(c fiber.Ctx) error {
	var req models.UpdateReminderRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	r, err := h.svc.Reminders.UpdateReminder(c.Context(), actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "reminder updated", r)
}

func (h *Handler) DeleteReminder(c fiber.Ctx) error {
	if err := h.svc.Reminders.DeleteReminder(c.Context(), actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "reminder deleted", nil)
}
