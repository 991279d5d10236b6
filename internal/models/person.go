package models

import "time"

// Award is a single award won by a person.
type Award struct {
	AwardName string `json:"awardName" validate:"required"`
	Year      int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
}

// Person is an actor, director or crew member.
type Person struct {
	ID            string    `json:"id"`
	TMDBId        *int      `json:"tmdbId,omitempty"`
	Name          string    `json:"name"`
	Biography     string    `json:"biography"`
	Filmography   []string  `json:"filmography"`
	Awards        []Award   `json:"awards"`
	Photos        []string  `json:"photos"`
	SearchedTimes int       `json:"searchedTimes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreatePersonRequest is the payload for adding a person.
type CreatePersonRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Biography   string   `json:"biography"`
	Filmography []string `json:"filmography" validate:"dive,uuid"`
	Awards      []Award  `json:"awards" validate:"dive"`
	Photos      []string `json:"photos" validate:"dive,url"`
}

// PersonPatch lists the person fields a generic update may touch.
type PersonPatch struct {
	Name      *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Biography *string   `json:"biography"`
	Awards    *[]Award  `json:"awards" validate:"omitempty,dive"`
	Photos    *[]string `json:"photos" validate:"omitempty,dive,url"`
}

// Pagination describes a page of results.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes page counts for total items.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if total > 0 && limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// PersonListResponse is the paginated person listing.
type PersonListResponse struct {
	Data       []Person   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
