package models

import "time"

// Movie is a catalog entry. AverageRating, Reviews and SimilarTitles are
// derived fields and are only written through their dedicated store paths.
type Movie struct {
	ID               string    `json:"id"`
	TMDBId           *int      `json:"tmdbId,omitempty"`
	Title            string    `json:"title"`
	Genres           []string  `json:"genre"`
	DirectorID       *string   `json:"directorId,omitempty"`
	CastIDs          []string  `json:"cast"`
	ImdbRating       float64   `json:"imdbRating"`
	ReleaseDate      time.Time `json:"releaseDate"`
	Runtime          int       `json:"runtime"`
	Synopsis         string    `json:"synopsis"`
	AverageRating    float64   `json:"averageRating"`
	CoverPhoto       string    `json:"coverPhoto"`
	Trivia           []string  `json:"trivia"`
	Goofs            []string  `json:"goofs"`
	Soundtrack       string    `json:"soundtrack"`
	AgeRating        string    `json:"ageRating"`
	ParentalGuidance string    `json:"parentalGuidance"`
	CountryOfOrigin  string    `json:"countryOfOrigin"`
	Language         string    `json:"language"`
	Keywords         []string  `json:"keywords"`
	Reviews          []string  `json:"reviews"`
	SimilarTitles    []string  `json:"similarTitles"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PersonRef is a resolved reference to a person.
type PersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is a movie with its director and cast resolved to names.
type MovieDetail struct {
	Movie
	Director    *PersonRef  `json:"director,omitempty"`
	CastMembers []PersonRef `json:"castMembers"`
}

// DirectorName returns the resolved director name, or "" if none.
func (d MovieDetail) DirectorName() string {
	if d.Director == nil {
		return ""
	}
	return d.Director.Name
}

// CastNames returns the resolved cast names in billing order.
func (d MovieDetail) CastNames() []string {
	names := make([]string, 0, len(d.CastMembers))
	for _, p := range d.CastMembers {
		names = append(names, p.Name)
	}
	return names
}

// CreateMovieRequest is the payload for adding a movie to the catalog.
type CreateMovieRequest struct {
	Title            string   `json:"title" validate:"required,max=500"`
	Genres           []string `json:"genre" validate:"dive,required"`
	DirectorID       *string  `json:"directorId" validate:"omitempty,uuid"`
	CastIDs          []string `json:"cast" validate:"dive,uuid"`
	ImdbRating       float64  `json:"imdbRating" validate:"gte=0,lte=10"`
	ReleaseDate      string   `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Runtime          int      `json:"runtime" validate:"gte=0"`
	Synopsis         string   `json:"synopsis"`
	AverageRating    float64  `json:"averageRating" validate:"gte=0,lte=5"`
	CoverPhoto       string   `json:"coverPhoto" validate:"omitempty,url"`
	Trivia           []string `json:"trivia"`
	Goofs            []string `json:"goofs"`
	Soundtrack       string   `json:"soundtrack"`
	AgeRating        string   `json:"ageRating"`
	ParentalGuidance string   `json:"parentalGuidance"`
	CountryOfOrigin  string   `json:"countryOfOrigin"`
	Language         string   `json:"language"`
	Keywords         []string `json:"keywords"`
}

// MoviePatch lists the movie fields a generic update may touch. Derived
// fields (averageRating, reviews, similarTitles) are intentionally absent.
type MoviePatch struct {
	Title            *string   `json:"title" validate:"omitempty,min=1,max=500"`
	Genres           *[]string `json:"genre" validate:"omitempty,dive,required"`
	DirectorID       *string   `json:"directorId" validate:"omitempty,uuid"`
	CastIDs          *[]string `json:"cast" validate:"omitempty,dive,uuid"`
	ImdbRating       *float64  `json:"imdbRating" validate:"omitempty,gte=0,lte=10"`
	ReleaseDate      *string   `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	Runtime          *int      `json:"runtime" validate:"omitempty,gte=0"`
	Synopsis         *string   `json:"synopsis"`
	CoverPhoto       *string   `json:"coverPhoto" validate:"omitempty,url"`
	Trivia           *[]string `json:"trivia"`
	Goofs            *[]string `json:"goofs"`
	Soundtrack       *string   `json:"soundtrack"`
	AgeRating        *string   `json:"ageRating"`
	ParentalGuidance *string   `json:"parentalGuidance"`
	CountryOfOrigin  *string   `json:"countryOfOrigin"`
	Language         *string   `json:"language"`
	Keywords         *[]string `json:"keywords"`
}

// Empty reports whether the patch changes nothing.
func (p MoviePatch) Empty() bool {
	return p.Title == nil && p.Genres == nil && p.DirectorID == nil && p.CastIDs == nil &&
		p.ImdbRating == nil && p.ReleaseDate == nil && p.Runtime == nil && p.Synopsis == nil &&
		p.CoverPhoto == nil && p.Trivia == nil && p.Goofs == nil && p.Soundtrack == nil &&
		p.AgeRating == nil && p.ParentalGuidance == nil && p.CountryOfOrigin == nil &&
		p.Language == nil && p.Keywords == nil
}

// MovieListParams holds query parameters for movie listing.
type MovieListParams struct {
	Page     int
	PageSize int
	SortBy   string
	Order    string
	Genre    string
}

// Normalize sets defaults and clamps parameters to supported values.
func (p *MovieListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	switch p.SortBy {
	case "release_date", "title", "imdb_rating", "average_rating":
	default:
		p.SortBy = "release_date"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
}

// MovieListResponse is the paginated movie listing response.
type MovieListResponse struct {
	Page         int     `json:"page"`
	PageSize     int     `json:"pageSize"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
	Data         []Movie `json:"data"`
}

// ScoredMovie pairs a movie with its recommendation score.
type ScoredMovie struct {
	Movie MovieDetail
	Score int
}
