package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-service/internal/apperr"
	"movie-recommendation-service/internal/models"
)

var (
	alice = Actor{UserID: "u-alice", Role: models.RoleUser}
	bob   = Actor{UserID: "u-bob", Role: models.RoleUser}
	root  = Actor{UserID: "u-root", Role: models.RoleAdmin}
)

func newListFixture(t *testing.T) (*ListService, *models.List) {
	t.Helper()
	movies := newFakeMovieStore(
		models.MovieDetail{Movie: models.Movie{ID: upcomingID, Title: "Dune: Part Three"}},
		models.MovieDetail{Movie: models.Movie{ID: laterID, Title: "The Batman II"}},
	)
	svc := NewListService(newFakeListStore(), movies)
	l, err := svc.CreateList(context.Background(), alice, alice.UserID, models.CreateListRequest{Name: "Sci-fi"})
	require.NoError(t, err)
	return svc, l
}

func TestCreateList(t *testing.T) {
	svc := NewListService(newFakeListStore(), newFakeMovieStore())
	ctx := context.Background()

	l, err := svc.CreateList(ctx, alice, alice.UserID, models.CreateListRequest{Name: "Watch later", Movies: []string{upcomingID}})
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, alice.UserID, l.OwnerID)
	assert.Equal(t, []string{upcomingID}, l.Movies)

	_, err = svc.CreateList(ctx, bob, alice.UserID, models.CreateListRequest{Name: "Hijack"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.CreateList(ctx, root, alice.UserID, models.CreateListRequest{Name: "Curated"})
	assert.NoError(t, err)

	_, err = svc.CreateList(ctx, alice, alice.UserID, models.CreateListRequest{Name: "", Movies: []string{"not-a-uuid"}})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "movies[0]")
}

func TestListOwnership(t *testing.T) {
	svc, l := newListFixture(t)
	ctx := context.Background()

	_, err := svc.AddMovie(ctx, bob, l.ID, models.ListMovieRequest{MovieID: upcomingID})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.RemoveMovie(ctx, bob, l.ID, upcomingID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.DeleteList(ctx, bob, l.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, err := svc.AddMovie(ctx, root, l.ID, models.ListMovieRequest{MovieID: upcomingID})
	require.NoError(t, err)
	assert.Equal(t, []string{upcomingID}, got.Movies)

	require.NoError(t, svc.DeleteList(ctx, alice, l.ID))
	_, err = svc.GetList(ctx, l.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListAddMovie_Idempotent(t *testing.T) {
	svc, l := newListFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := svc.AddMovie(ctx, alice, l.ID, models.ListMovieRequest{MovieID: upcomingID})
		require.NoError(t, err)
		assert.Equal(t, []string{upcomingID}, got.Movies)
	}

	got, err := svc.AddMovie(ctx, alice, l.ID, models.ListMovieRequest{MovieID: laterID})
	require.NoError(t, err)
	assert.Equal(t, []string{upcomingID, laterID}, got.Movies)

	got, err = svc.RemoveMovie(ctx, alice, l.ID, upcomingID)
	require.NoError(t, err)
	assert.Equal(t, []string{laterID}, got.Movies)
}

func TestListAddMovie_MovieMustExist(t *testing.T) {
	svc, l := newListFixture(t)
	ctx := context.Background()

	_, err := svc.AddMovie(ctx, alice, l.ID, models.ListMovieRequest{MovieID: releasedID})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "movie not found", err.Error())

	_, err = svc.AddMovie(ctx, alice, l.ID, models.ListMovieRequest{MovieID: "nope"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := svc.GetList(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Movies)
}

func TestListFollow(t *testing.T) {
	svc, l := newListFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := svc.Follow(ctx, bob, bob.UserID, l.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{bob.UserID}, got.Followers)
	}

	_, err := svc.Follow(ctx, bob, "u-someone-else", l.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	lists, err := svc.ListsForUser(ctx, bob.UserID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, l.ID, lists[0].ID)

	got, err := svc.Unfollow(ctx, bob.UserID, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Followers)

	lists, err = svc.ListsForUser(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}
