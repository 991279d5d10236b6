package models

import "time"

// Article categories.
const (
	CategoryMovies           = "Movies"
	CategoryActors           = "Actors"
	CategoryUpcomingProjects = "Upcoming Projects"
	CategoryIndustryUpdates  = "Industry Updates"
)

// Article is an editorial news item.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	AuthorID    string    `json:"authorId"`
	PublishedAt time.Time `json:"publishedAt"`
	CoverImage  string    `json:"coverImage"`
	Views       int       `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateArticleRequest is the payload for publishing an article. IsPublished
// defaults to true when omitted.
type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Content     string   `json:"content" validate:"required"`
	Category    string   `json:"category" validate:"required,oneof='Movies' 'Actors' 'Upcoming Projects' 'Industry Updates'"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"coverImage" validate:"omitempty,url"`
	IsPublished *bool    `json:"isPublished"`
}

// ArticlePatch is a partial article update; nil fields are left unchanged.
type ArticlePatch struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=300"`
	Content     *string   `json:"content" validate:"omitempty,min=1"`
	Category    *string   `json:"category" validate:"omitempty,oneof='Movies' 'Actors' 'Upcoming Projects' 'Industry Updates'"`
	Tags        *[]string `json:"tags"`
	CoverImage  *string   `json:"coverImage" validate:"omitempty,url"`
	IsPublished *bool     `json:"isPublished"`
}

// ArticleListParams filters the article listing.
type ArticleListParams struct {
	Category string
	Tags     []string
	Page     int
	Limit    int
}

type ArticleListResponse struct {
	Data       []Article  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
