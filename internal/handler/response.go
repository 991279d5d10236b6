package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/service"
)

// Envelope is the body of every API response.
type Envelope struct {
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respond(c fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{Message: message, Data: data})
}

// StatusFor returns the HTTP status for a classified error.
func StatusFor(e *apperr.Error) int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindPreconditionFailed:
		return fiber.StatusPreconditionFailed
	case apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as an error envelope. Internal details are only
// logged.
func respondError(c fiber.Ctx, err error) error {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		slog.Error("request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(Envelope{Message: "internal server error"})
	}
	return c.Status(StatusFor(e)).JSON(Envelope{Message: e.Message, Errors: e.Fields})
}

// ErrorHandler is the Fiber error handler. It renders errors that escape a
// handler, including Fiber's own, in the standard envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Envelope{Message: fe.Message})
	}
	return respondError(c, err)
}

func bind(c fiber.Ctx, out interface{}) error {
	if err := c.Bind().JSON(out); err != nil {
		return apperr.Validation("invalid request body", map[string]string{"body": "malformed JSON"})
	}
	return nil
}

func actor(c fiber.Ctx) service.Actor {
	return service.Actor{UserID: middleware.UserID(c), Role: middleware.Role(c)}
}

// requireSelf rejects requests for another user's resources unless the
// caller is an admin.
func requireSelf(c fiber.Ctx, userID string) error {
	if !actor(c).CanModify(userID) {
		return apperr.Forbidden("access denied")
	}
	return nil
}
