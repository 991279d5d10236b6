package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/models"
)

// ListArticles returns published articles.
// @Summary List articles
// @Tags articles
// @Produce json
// @Param category query string false "Category"
// @Param tags query string false "Comma separated tags"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} Envelope
// @Router /articles [get]
func (h *Handler) ListArticles(c fiber.Ctx) error {
	params := models.ArticleListParams{
		Category: c.Query("category"),
		Page:     fiber.Query(c, "page", 1),
		Limit:    fiber.Query(c, "limit", 10),
	}
	if tags := c.Query("tags"); tags != "" {
		params.Tags = strings.Split(tags, ",")
	}

	result, err := h.svc.Articles.ListArticles(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "articles retrieved", result)
}

func (h *Handler) SearchArticles(c fiber.Ctx) error {
	result, err := h.svc.Articles.SearchArticles(c.Context(), c.Query("query"),
		fiber.Query(c, "page", 1), fiber.Query(c, "limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "articles retrieved", result)
}

func (h *Handler) CreateArticle(c fiber.Ctx) error {
	var req models.CreateArticleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	a, err := h.svc.Articles.CreateArticle(c.Context(), actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "article created", a)
}

func (h *Handler) GetArticle(c fiber.Ctx) error {
	a, err := h.svc.Articles.GetArticle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "article retrieved", a)
}

func (h *Handler) UpdateArticle(c fiber.Ctx) error {
	var patch models.ArticlePatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, err)
	}
	a, err := h.svc.Articles.UpdateArticle(c.Context(), actor(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "article updated", a)
}

func (h *Handler) DeleteArticle(c fiber.Ctx) error {
	if err := h.svc.Articles.DeleteArticle(c.Context(), actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "article deleted", nil)
}

func (h *Handler) RecordArticleView(c fiber.Ctx) error {
	views, err := h.svc.Articles.RecordView(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "view recorded", fiber.Map{"views": views})
}
