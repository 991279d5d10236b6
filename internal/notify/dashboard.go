package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"movie-recommendation-service/internal/models"
)

const (
	dashboardFeedSize = 50
	dashboardFeedTTL  = 30 * 24 * time.Hour
)

// ErrFeedUnavailable is returned when the dashboard store is not connected.
var ErrFeedUnavailable = errors.New("dashboard feed unavailable")

// DashboardChannel keeps a capped per-user notification feed in Redis.
type DashboardChannel struct {
	rdb *redis.Client
	now func() time.Time
}

// NewDashboardChannel creates a dashboard channel. rdb may be nil, in which
// case every send fails.
func NewDashboardChannel(rdb *redis.Client) *DashboardChannel {
	return &DashboardChannel{rdb: rdb, now: time.Now}
}

func feedKey(userID string) string {
	return "notifications:" + userID
}

// Send implements Dispatcher.
func (d *DashboardChannel) Send(ctx context.Context, n Notification) error {
	if d.rdb == nil {
		return ErrFeedUnavailable
	}
	if n.UserID == "" {
		return errors.New("dashboard notification has no user")
	}

	payload, err := json.Marshal(models.DashboardNotification{
		Subject:   n.Subject,
		Body:      n.Body,
		CreatedAt: d.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	key := feedKey(n.UserID)
	pipe := d.rdb.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, dashboardFeedSize-1)
	pipe.Expire(ctx, key, dashboardFeedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push dashboard notification: %w", err)
	}
	return nil
}

// List returns up to limit of the user's most recent notifications.
func (d *DashboardChannel) List(ctx context.Context, userID string, limit int) ([]models.DashboardNotification, error) {
	if d.rdb == nil {
		return nil, ErrFeedUnavailable
	}
	if limit <= 0 || limit > dashboardFeedSize {
		limit = dashboardFeedSize
	}

	raw, err := d.rdb.LRange(ctx, feedKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read dashboard feed: %w", err)
	}

	items := make([]models.DashboardNotification, 0, len(raw))
	for _, r := range raw {
		var item models.DashboardNotification
		if err := json.Unmarshal([]byte(r), &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
