package models

// LikedPost is a post ranked by upvotes.
type LikedPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Forum     PersonRef `json:"forum"`
	Author    PersonRef `json:"author"`
	LikeCount int       `json:"likeCount"`
}

// LikedReview is a review ranked by likes.
type LikedReview struct {
	ID          string    `json:"id"`
	ReviewText  string    `json:"reviewText"`
	RatingValue int       `json:"ratingValue"`
	Movie       PersonRef `json:"movie"`
	Author      PersonRef `json:"author"`
	LikeCount   int       `json:"likeCount"`
}

// ForumStat is a forum ranked by a count.
type ForumStat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PopularMovie is a movie ranked by IMDb rating.
type PopularMovie struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	ImdbRating float64     `json:"imdbRating"`
	Director   *PersonRef  `json:"director,omitempty"`
	Cast       []PersonRef `json:"cast"`
}
