package models

import "time"

// List is a named, followable collection of movies.
type List struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	Movies    []string  `json:"movies"`
	Followers []string  `json:"followers"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateListRequest struct {
	Name   string   `json:"name" validate:"required,max=200"`
	Movies []string `json:"movies" validate:"dive,uuid"`
}

type ListMovieRequest struct {
	MovieID string `json:"movieId" validate:"required,uuid"`
}

// Forum is a discussion board.
type Forum struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	Moderators  []string  `json:"moderators"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateForumRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

type ForumPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// Post is a forum thread entry.
type Post struct {
	ID        string    `json:"id"`
	ForumID   string    `json:"forumId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy"`
	Upvotes   []string  `json:"upvotes"`
	Downvotes []string  `json:"downvotes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Content string `json:"content" validate:"required"`
}

type PostPatch struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=300"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// Vote directions.
const (
	VoteUp   = "up"
	VoteDown = "down"
)
