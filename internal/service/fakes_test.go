package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
)

type fakeMovieStore struct {
	mu        sync.Mutex
	order     []string
	movies    map[string]*models.MovieDetail
	appendErr error
}

func newFakeMovieStore(details ...models.MovieDetail) *fakeMovieStore {
	s := &fakeMovieStore{movies: make(map[string]*models.MovieDetail)}
	for i := range details {
		d := details[i]
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		s.order = append(s.order, d.ID)
		s.movies[d.ID] = &d
	}
	return s
}

func (s *fakeMovieStore) Create(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.NewString()
	s.order = append(s.order, m.ID)
	s.movies[m.ID] = &models.MovieDetail{Movie: *m}
	return nil
}

func (s *fakeMovieStore) GetByID(_ context.Context, id string) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.movies[id]
	if !ok {
		return nil, apperr.NotFound("movie not found")
	}
	m := d.Movie
	return &m, nil
}

func (s *fakeMovieStore) GetDetail(_ context.Context, id string) (*models.MovieDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.movies[id]
	if !ok {
		return nil, apperr.NotFound("movie not found")
	}
	cp := *d
	return &cp, nil
}

func (s *fakeMovieStore) GetByIDs(_ context.Context, ids []string) ([]models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.movies[id]; ok {
			out = append(out, d.Movie)
		}
	}
	return out, nil
}

func (s *fakeMovieStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.movies[id]
	return ok, nil
}

func (s *fakeMovieStore) ListAll(ctx context.Context) ([]models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Movie, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.movies[id].Movie)
	}
	return out, nil
}

func (s *fakeMovieStore) ListAllDetails(context.Context) ([]models.MovieDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MovieDetail, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.movies[id])
	}
	return out, nil
}

func (s *fakeMovieStore) List(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error) {
	all, _ := s.ListAll(ctx)
	return &models.MovieListResponse{Page: params.Page, PageSize: params.PageSize, TotalResults: len(all), TotalPages: 1, Data: all}, nil
}

func (s *fakeMovieStore) Update(_ context.Context, id string, p models.MoviePatch) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.movies[id]
	if !ok {
		return nil, apperr.NotFound("movie not found")
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.ImdbRating != nil {
		d.ImdbRating = *p.ImdbRating
	}
	m := d.Movie
	return &m, nil
}

func (s *fakeMovieStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return apperr.NotFound("movie not found")
	}
	delete(s.movies, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeMovieStore) AppendReview(_ context.Context, movieID, reviewID string, average float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	d, ok := s.movies[movieID]
	if !ok {
		return apperr.NotFound("movie not found")
	}
	d.Reviews = append(d.Reviews, reviewID)
	d.AverageRating = average
	return nil
}

func (s *fakeMovieStore) SetSimilarTitles(_ context.Context, movieID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.movies[movieID]
	if !ok {
		return apperr.NotFound("movie not found")
	}
	d.SimilarTitles = append([]string(nil), ids...)
	return nil
}

func (s *fakeMovieStore) UpsertByTMDBId(_ context.Context, m *models.Movie) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		d := s.movies[id]
		if d.TMDBId != nil && m.TMDBId != nil && *d.TMDBId == *m.TMDBId {
			reviews, avg, similar := d.Reviews, d.AverageRating, d.SimilarTitles
			d.Movie = *m
			d.ID, d.Reviews, d.AverageRating, d.SimilarTitles = id, reviews, avg, similar
			return id, nil
		}
	}
	m.ID = uuid.NewString()
	s.order = append(s.order, m.ID)
	s.movies[m.ID] = &models.MovieDetail{Movie: *m}
	return m.ID, nil
}

type fakeReviewStore struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func (s *fakeReviewStore) Create(_ context.Context, rv *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rv.ID = uuid.NewString()
	rv.LikedBy = []string{}
	rv.CreatedAt = time.Now().UTC()
	cp := *rv
	s.reviews = append(s.reviews, &cp)
	return nil
}

func (s *fakeReviewStore) find(id string) (*models.Review, error) {
	for _, rv := range s.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return nil, apperr.NotFound("review not found")
}

func (s *fakeReviewStore) GetByID(_ context.Context, id string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rv, err := s.find(id)
	if err != nil {
		return nil, err
	}
	cp := *rv
	return &cp, nil
}

func (s *fakeReviewStore) ListByMovie(_ context.Context, movieID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Review, 0)
	for _, rv := range s.reviews {
		if rv.MovieID == movieID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) AddLike(_ context.Context, reviewID, userID string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rv, err := s.find(reviewID)
	if err != nil {
		return nil, err
	}
	if !contains(rv.LikedBy, userID) {
		rv.LikedBy = append(rv.LikedBy, userID)
	}
	rv.LikeCount = len(rv.LikedBy)
	cp := *rv
	return &cp, nil
}

func (s *fakeReviewStore) RemoveLike(_ context.Context, reviewID, userID string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rv, err := s.find(reviewID)
	if err != nil {
		return nil, err
	}
	kept := rv.LikedBy[:0]
	for _, u := range rv.LikedBy {
		if u != userID {
			kept = append(kept, u)
		}
	}
	rv.LikedBy = kept
	rv.LikeCount = len(rv.LikedBy)
	cp := *rv
	return &cp, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for i := range users {
		u := users[i]
		s.users[u.ID] = &u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.Conflict("email already exists")
		}
		if existing.Username == u.Username {
			return apperr.Conflict("username already exists")
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (s *fakeUserStore) List(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, id string, p models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.MoviePreferences != nil {
		u.MoviePreferences = *p.MoviePreferences
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	delete(s.users, id)
	return nil
}

type fakeReminderStore struct {
	mu        sync.Mutex
	reminders map[string]*models.Reminder
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{reminders: make(map[string]*models.Reminder)}
}

func (s *fakeReminderStore) Create(_ context.Context, rm *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm.ID = uuid.NewString()
	cp := *rm
	s.reminders[rm.ID] = &cp
	return nil
}

func (s *fakeReminderStore) GetByID(_ context.Context, id string) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm, ok := s.reminders[id]
	if !ok {
		return nil, apperr.NotFound("reminder not found")
	}
	cp := *rm
	return &cp, nil
}

func (s *fakeReminderStore) ListByUser(_ context.Context, userID string) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, 0)
	for _, rm := range s.reminders {
		if rm.UserID == userID {
			out = append(out, *rm)
		}
	}
	return out, nil
}

func (s *fakeReminderStore) Update(_ context.Context, rm *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[rm.ID]; !ok {
		return apperr.NotFound("reminder not found")
	}
	cp := *rm
	s.reminders[rm.ID] = &cp
	return nil
}

func (s *fakeReminderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[id]; !ok {
		return apperr.NotFound("reminder not found")
	}
	delete(s.reminders, id)
	return nil
}

func (s *fakeReminderStore) FindDue(_ context.Context, day time.Time) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, 0)
	for _, rm := range s.reminders {
		if !rm.Sent && rm.ReminderDate.Format(dateLayout) == day.Format(dateLayout) {
			out = append(out, *rm)
		}
	}
	return out, nil
}

func (s *fakeReminderStore) MarkSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm, ok := s.reminders[id]
	if !ok {
		return apperr.NotFound("reminder not found")
	}
	rm.Sent = true
	return nil
}

type fakePersonStore struct {
	mu     sync.Mutex
	people map[string]*models.Person
}

func newFakePersonStore() *fakePersonStore {
	return &fakePersonStore{people: make(map[string]*models.Person)}
}

func (s *fakePersonStore) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	cp := *p
	s.people[p.ID] = &cp
	return nil
}

func (s *fakePersonStore) GetByID(_ context.Context, id string) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.people[id]
	if !ok {
		return nil, apperr.NotFound("person not found")
	}
	cp := *p
	return &cp, nil
}

func (s *fakePersonStore) GetAndCountSearch(ctx context.Context, id string) (*models.Person, error) {
	s.mu.Lock()
	if p, ok := s.people[id]; ok {
		p.SearchedTimes++
	}
	s.mu.Unlock()
	return s.GetByID(ctx, id)
}

func (s *fakePersonStore) List(_ context.Context, page, limit int) (*models.PersonListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, *p)
	}
	return &models.PersonListResponse{Data: out, Pagination: models.NewPagination(len(out), page, limit)}, nil
}

func (s *fakePersonStore) Update(_ context.Context, id string, p models.PersonPatch) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.people[id]
	if !ok {
		return nil, apperr.NotFound("person not found")
	}
	if p.Name != nil {
		existing.Name = *p.Name
	}
	cp := *existing
	return &cp, nil
}

func (s *fakePersonStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.people, id)
	return nil
}

func (s *fakePersonStore) AddToFilmography(_ context.Context, id, movieID string) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.people[id]
	if !ok {
		return nil, apperr.NotFound("person not found")
	}
	if !contains(p.Filmography, movieID) {
		p.Filmography = append(p.Filmography, movieID)
	}
	cp := *p
	return &cp, nil
}

func (s *fakePersonStore) UpsertByTMDBId(_ context.Context, tmdbID int, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.people {
		if p.TMDBId != nil && *p.TMDBId == tmdbID {
			p.Name = name
			return p.ID, nil
		}
	}
	id := uuid.NewString()
	tid := tmdbID
	s.people[id] = &models.Person{ID: id, TMDBId: &tid, Name: name}
	return id, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
