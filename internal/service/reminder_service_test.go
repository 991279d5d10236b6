package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
)

const (
	upcomingID = "8f14e45f-ceea-467a-9af0-6c4c5b6b3a10"
	laterID    = "c9f0f895-fb98-4b91-8e1b-3b8f1c2d4e5f"
	releasedID = "45c48cce-2e2d-4fbd-a0b4-3c6b1f4d2e7a"
)

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newReminderFixture() (*ReminderService, *fakeReminderStore) {
	movies := newFakeMovieStore(
		models.MovieDetail{Movie: models.Movie{ID: upcomingID, Title: "Dune: Part Three", ReleaseDate: date("2026-04-01")}},
		models.MovieDetail{Movie: models.Movie{ID: laterID, Title: "The Batman II", ReleaseDate: date("2026-10-02")}},
		models.MovieDetail{Movie: models.Movie{ID: releasedID, Title: "Arrival", ReleaseDate: date("2016-11-11")}},
	)
	reminders := newFakeReminderStore()
	svc := NewReminderService(reminders, movies)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, reminders
}

func TestReminderDateFor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	got, err := ReminderDateFor(date("2026-03-01"), now)
	assert.ErrorIs(t, err, ErrMovieReleased)
	assert.True(t, got.IsZero())

	got, err = ReminderDateFor(date("2026-03-01"), date("2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, date("2026-02-28"), got)

	got, err = ReminderDateFor(date("2024-03-01"), date("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, date("2024-02-29"), got)
}

func TestCreateReminder(t *testing.T) {
	svc, store := newReminderFixture()

	rm, err := svc.CreateReminder(context.Background(), "u1", models.CreateReminderRequest{MovieID: upcomingID})
	require.NoError(t, err)

	assert.Equal(t, date("2026-03-31"), rm.ReminderDate)
	assert.Equal(t, models.ChannelEmail, rm.NotificationType)
	assert.False(t, rm.Sent)
	assert.Len(t, store.reminders, 1)
}

func TestCreateReminder_AlreadyReleased(t *testing.T) {
	svc, store := newReminderFixture()

	_, err := svc.CreateReminder(context.Background(), "u1", models.CreateReminderRequest{MovieID: releasedID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMovieReleased))

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindPreconditionFailed, e.Kind)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Empty(t, store.reminders)
}

func TestCreateReminder_Validation(t *testing.T) {
	svc, _ := newReminderFixture()

	_, err := svc.CreateReminder(context.Background(), "u1", models.CreateReminderRequest{MovieID: "not-a-uuid"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateReminder(context.Background(), "u1", models.CreateReminderRequest{MovieID: upcomingID, NotificationType: "sms"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateReminder_UnknownMovie(t *testing.T) {
	svc, _ := newReminderFixture()
	_, err := svc.CreateReminder(context.Background(), "u1", models.CreateReminderRequest{MovieID: "0b7e2a4c-1d2e-4f3a-8b9c-0d1e2f3a4b5c"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateReminder(t *testing.T) {
	svc, _ := newReminderFixture()
	ctx := context.Background()
	owner := Actor{UserID: "u1", Role: models.RoleUser}

	rm, err := svc.CreateReminder(ctx, "u1", models.CreateReminderRequest{MovieID: upcomingID})
	require.NoError(t, err)

	later, dashboard := laterID, models.ChannelDashboard
	updated, err := svc.UpdateReminder(ctx, owner, rm.ID, models.UpdateReminderRequest{MovieID: &later, NotificationType: &dashboard})
	require.NoError(t, err)

	assert.Equal(t, laterID, updated.MovieID)
	assert.Equal(t, date("2026-10-01"), updated.ReminderDate)
	assert.Equal(t, models.ChannelDashboard, updated.NotificationType)
	assert.False(t, updated.Sent)
}

func TestUpdateReminder_SentIsFinal(t *testing.T) {
	svc, store := newReminderFixture()
	ctx := context.Background()
	owner := Actor{UserID: "u1", Role: models.RoleUser}

	rm, err := svc.CreateReminder(ctx, "u1", models.CreateReminderRequest{MovieID: upcomingID})
	require.NoError(t, err)
	require.NoError(t, store.MarkSent(ctx, rm.ID))

	email := models.ChannelEmail
	_, err = svc.UpdateReminder(ctx, owner, rm.ID, models.UpdateReminderRequest{NotificationType: &email})
	assert.ErrorIs(t, err, ErrReminderSent)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	stored, err := store.GetByID(ctx, rm.ID)
	require.NoError(t, err)
	assert.True(t, stored.Sent)

	due, err := store.FindDue(ctx, date("2026-03-31"))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestUpdateReminder_ToReleasedMovie(t *testing.T) {
	svc, _ := newReminderFixture()
	ctx := context.Background()

	rm, err := svc.CreateReminder(ctx, "u1", models.CreateReminderRequest{MovieID: upcomingID})
	require.NoError(t, err)

	released := releasedID
	_, err = svc.UpdateReminder(ctx, Actor{UserID: "u1"}, rm.ID, models.UpdateReminderRequest{MovieID: &released})
	assert.ErrorIs(t, err, ErrMovieReleased)
}

func TestReminderOwnership(t *testing.T) {
	svc, _ := newReminderFixture()
	ctx := context.Background()

	rm, err := svc.CreateReminder(ctx, "u1", models.CreateReminderRequest{MovieID: upcomingID})
	require.NoError(t, err)

	stranger := Actor{UserID: "u2", Role: models.RoleUser}
	_, err = svc.UpdateReminder(ctx, stranger, rm.ID, models.UpdateReminderRequest{})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(svc.DeleteReminder(ctx, stranger, rm.ID)))

	admin := Actor{UserID: "root", Role: models.RoleAdmin}
	require.NoError(t, svc.DeleteReminder(ctx, admin, rm.ID))

	list, err := svc.ListReminders(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
