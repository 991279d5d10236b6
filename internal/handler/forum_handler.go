package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/models"
)

func (h *Handler) ListForums(c fiber.Ctx) error {
	forums, err := h.svc.Forums.ListForums(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "forums retrieved", forums)
}

func (h *Handler) CreateForum(c fiber.Ctx) error {
	var req models.CreateForumRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	f, err := h.svc.Forums.CreateForum(c.Context(), actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "forum created", f)
}

func (h *Handler) GetForum(c fiber.Ctx) error {
	f, err := h.svc.Forums.GetForum(c.Context(), c.Params("forumId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "forum retrieved", f)
}

func (h *Handler) UpdateForum(c fiber.Ctx) error {
	var patch models.ForumPatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, err)
	}
	f, err := h.svc.Forums.UpdateForum(c.Context(), c.Params("forumId"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "forum updated", f)
}

func (h *Handler) DeleteForum(c fiber.Ctx) error {
	if err := h.svc.Forums.DeleteForum(c.Context(), c.Params("forumId")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "forum deleted", nil)
}

func (h *Handler) JoinForum(c fiber.Ctx) error {
	f, err := h.svc.Forums.Join(c.Context(), c.Params("forumId"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "joined forum", f)
}

func (h *Handler) LeaveForum(c fiber.Ctx) error {
	f, err := h.svc.Forums.Leave(c.Context(), c.Params("forumId"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "left forum", f)
}

func (h *Handler) ListPosts(c fiber.Ctx) error {
	posts, err := h.svc.Forums.ListPosts(c.Context(), c.Params("forumId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "posts retrieved", posts)
}

func (h *Handler) CreatePost(c fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := h.svc.Forums.CreatePost(c.Context(), actor(c), c.Params("forumId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "post created", p)
}

func (h *Handler) GetPost(c fiber.Ctx) error {
	p, err := h.svc.Forums.GetPost(c.Context(), c.Params("forumId"), c.Params("postId"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "post retrieved", p)
}

func (h *Handler) UpdatePost(c fiber.Ctx) error {
	var patch models.PostPatch
	if err := bind(c, &patch); err != nil {
		return respondError(c, err)
	}
	p, err := h.svc.Forums.UpdatePost(c.Context(), actor(c), c.Params("forumId"), c.Params("postId"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "post updated", p)
}

func (h *Handler) DeletePost(c fiber.Ctx) error {
	if err := h.svc.Forums.DeletePost(c.Context(), actor(c), c.Params("forumId"), c.Params("postId")); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "post deleted", nil)
}

func (h *Handler) Upvote(c fiber.Ctx) error {
	return h.vote(c, models.VoteUp)
}

func (h *Handler) Downvote(c fiber.Ctx) error {
	return h.vote(c, models.VoteDown)
}

func (h *Handler) vote(c fiber.Ctx, direction string) error {
	p, err := h.svc.Forums.Vote(c.Context(), c.Params("forumId"), c.Params("postId"), middleware.UserID(c), direction)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "vote recorded", p)
}
