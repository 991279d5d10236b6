// Package notify delivers user notifications over email or the in-app
// dashboard feed.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"movie-recommendation-service/internal/metrics"
	"movie-recommendation-service/internal/models"
)

// Notification is a message addressed to one user.
type Notification struct {
	UserID  string
	To      string
	Subject string
	Body    string
	Channel string
}

// Dispatcher delivers a notification. Implementations must be safe for
// concurrent use.
type Dispatcher interface {
	Send(ctx context.Context, n Notification) error
}

// Router dispatches each notification to the channel it names. An empty
// channel means email.
type Router struct {
	channels map[string]Dispatcher
}

// NewRouter creates a router over the given channels.
func NewRouter(email, dashboard Dispatcher) *Router {
	return &Router{channels: map[string]Dispatcher{
		models.ChannelEmail:     email,
		models.ChannelDashboard: dashboard,
	}}
}

// Send implements Dispatcher.
func (r *Router) Send(ctx context.Context, n Notification) error {
	channel := n.Channel
	if channel == "" {
		channel = models.ChannelEmail
	}
	d, ok := r.channels[channel]
	if !ok || d == nil {
		metrics.NotificationsSent.WithLabelValues(channel, "failed").Inc()
		return fmt.Errorf("unsupported notification channel %q", channel)
	}

	err := d.Send(ctx, n)
	metrics.NotificationsSent.WithLabelValues(channel, metrics.Outcome(err)).Inc()
	if err != nil {
		slog.Warn("notification delivery failed", "channel", channel, "user_id", n.UserID, "error", err)
	}
	return err
}
