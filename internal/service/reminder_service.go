package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/validation"
)

// ErrMovieReleased is returned when a reminder targets a movie that is
// already out.
var ErrMovieReleased = apperr.PreconditionFailed("movie has already been released").WithStatus(http.StatusBadRequest)

// ErrReminderSent is returned when changing a reminder that was delivered.
var ErrReminderSent = apperr.Conflict("reminder has already been sent")

// ReminderService manages release reminders.
type ReminderService struct {
	reminders ReminderStore
	movies    MovieStore
	now       func() time.Time
}

// NewReminderService creates a new ReminderService.
func NewReminderService(reminders ReminderStore, movies MovieStore) *ReminderService {
	return &ReminderService{reminders: reminders, movies: movies, now: time.Now}
}

// ReminderDateFor returns the day a reminder for a movie fires, or
// ErrMovieReleased if the release date is before now.
func ReminderDateFor(releaseDate, now time.Time) (time.Time, error) {
	if releaseDate.Before(now) {
		return time.Time{}, ErrMovieReleased
	}
	return releaseDate.AddDate(0, 0, -1), nil
}

func (s *ReminderService) reminderDate(ctx context.Context, movieID string) (time.Time, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return time.Time{}, err
	}
	return ReminderDateFor(movie.ReleaseDate, s.now())
}

// CreateReminder subscribes userID to the release of a movie.
func (s *ReminderService) CreateReminder(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	date, err := s.reminderDate(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}

	channel := req.NotificationType
	if channel == "" {
		channel = models.ChannelEmail
	}

	rm := &models.Reminder{
		UserID:           userID,
		MovieID:          req.MovieID,
		ReminderDate:     date,
		NotificationType: channel,
	}
	if err := s.reminders.Create(ctx, rm); err != nil {
		return nil, err
	}
	slog.Info("reminder created", "reminder_id", rm.ID, "movie_id", rm.MovieID, "date", date.Format("2006-01-02"))
	return rm, nil
}

func (s *ReminderService) owned(ctx context.Context, actor Actor, id string) (*models.Reminder, error) {
	rm, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(rm.UserID) {
		return nil, apperr.Forbidden("access denied")
	}
	return rm, nil
}

// UpdateReminder changes the movie or channel of a pending reminder and
// recomputes its date. A sent reminder is final and cannot be changed.
func (s *ReminderService) UpdateReminder(ctx context.Context, actor Actor, id string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	rm, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if rm.Sent {
		return nil, ErrReminderSent
	}

	if req.MovieID != nil {
		rm.MovieID = *req.MovieID
	}
	if req.NotificationType != nil {
		rm.NotificationType = *req.NotificationType
	}
	date, err := s.reminderDate(ctx, rm.MovieID)
	if err != nil {
		return nil, err
	}
	rm.ReminderDate = date

	if err := s.reminders.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

// DeleteReminder removes a reminder.
func (s *ReminderService) DeleteReminder(ctx context.Context, actor Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}

// ListReminders returns the reminders of a user.
func (s *ReminderService) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	return s.reminders.ListByUser(ctx, userID)
}
