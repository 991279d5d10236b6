package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-service/internal/config"
	"movie-recommendation-service/internal/models"
)

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingDispatcher) Send(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func TestRouter_SelectsChannel(t *testing.T) {
	email := &recordingDispatcher{}
	dashboard := &recordingDispatcher{}
	r := NewRouter(email, dashboard)

	require.NoError(t, r.Send(context.Background(), Notification{UserID: "u1", Channel: models.ChannelDashboard}))
	require.NoError(t, r.Send(context.Background(), Notification{UserID: "u2", To: "a@b.c", Channel: models.ChannelEmail}))
	require.NoError(t, r.Send(context.Background(), Notification{UserID: "u3", To: "d@e.f"}))

	assert.Len(t, dashboard.sent, 1)
	assert.Len(t, email.sent, 2)
	assert.Equal(t, "u3", email.sent[1].UserID)
}

func TestRouter_UnknownChannel(t *testing.T) {
	r := NewRouter(&recordingDispatcher{}, &recordingDispatcher{})
	err := r.Send(context.Background(), Notification{Channel: "sms"})
	assert.Error(t, err)
}

func TestRouter_PropagatesFailure(t *testing.T) {
	boom := errors.New("smtp down")
	r := NewRouter(&recordingDispatcher{err: boom}, &recordingDispatcher{})
	err := r.Send(context.Background(), Notification{To: "a@b.c"})
	assert.ErrorIs(t, err, boom)
}

func TestEmailChannel_DisabledLogsOnly(t *testing.T) {
	c := NewEmailChannel(config.SMTPConfig{})
	called := false
	c.send = func(context.Context, string, string) error {
		called = true
		return nil
	}

	err := c.Send(context.Background(), Notification{To: "a@b.c", Subject: "s", Body: "b"})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestEmailChannel_RequiresRecipient(t *testing.T) {
	c := NewEmailChannel(config.SMTPConfig{Host: "smtp.example.com"})
	err := c.Send(context.Background(), Notification{Subject: "s"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestEmailChannel_BuildsMessage(t *testing.T) {
	c := NewEmailChannel(config.SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"})
	var got string
	c.send = func(_ context.Context, to, msg string) error {
		got = msg
		return nil
	}

	err := c.Send(context.Background(), Notification{
		To:      "fan@example.com",
		Subject: "Dune is releasing tomorrow!",
		Body:    "line one\nline two",
	})
	require.NoError(t, err)

	assert.Contains(t, got, "To: fan@example.com\r\n")
	assert.Contains(t, got, "Subject: Dune is releasing tomorrow!\r\n")
	assert.True(t, strings.HasSuffix(got, "line one\r\nline two"))
}

func TestEmailChannel_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	c := NewEmailChannel(config.SMTPConfig{Host: "smtp.example.com"})
	calls := 0
	c.send = func(context.Context, string, string) error {
		calls++
		return errors.New("connection refused")
	}

	n := Notification{To: "a@b.c"}
	for i := 0; i < 5; i++ {
		assert.Error(t, c.Send(context.Background(), n))
	}
	err := c.Send(context.Background(), n)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, calls)
}

func TestDashboardChannel_NoRedis(t *testing.T) {
	d := NewDashboardChannel(nil)
	assert.ErrorIs(t, d.Send(context.Background(), Notification{UserID: "u1"}), ErrFeedUnavailable)

	_, err := d.List(context.Background(), "u1", 10)
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}
