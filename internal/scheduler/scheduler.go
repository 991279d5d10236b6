// Package scheduler runs the daily release-reminder job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"movie-recommendation-service/internal/config"
	"movie-recommendation-service/internal/metrics"
	"movie-recommendation-service/internal/models"
	"movie-recommendation-service/internal/notify"
)

// ReminderStore is the reminder persistence the job needs.
type ReminderStore interface {
	FindDue(ctx context.Context, day time.Time) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id string) error
}

// UserLookup loads reminder owners.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// MovieLookup loads reminded movies.
type MovieLookup interface {
	GetByID(ctx context.Context, id string) (*models.Movie, error)
}

// RunResult summarises one pass over the due reminders.
type RunResult struct {
	Due    int `json:"due"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Scheduler sends the notifications for reminders due today, once a day at
// a fixed wall-clock time.
type Scheduler struct {
	reminders  ReminderStore
	users      UserLookup
	movies     MovieLookup
	dispatcher notify.Dispatcher
	cfg        config.ReminderConfig
	now        func() time.Time
}

// New creates a Scheduler.
func New(reminders ReminderStore, users UserLookup, movies MovieLookup, dispatcher notify.Dispatcher, cfg config.ReminderConfig) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scheduler{
		reminders:  reminders,
		users:      users,
		movies:     movies,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// NextRun returns the first configured run time strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	local := now.In(s.cfg.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.cfg.Hour, s.cfg.Minute, 0, 0, s.cfg.Location)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, s.cfg.Hour, s.cfg.Minute, 0, 0, s.cfg.Location)
	}
	return next
}

// today returns the current calendar day in the scheduler's zone, as a UTC
// midnight to match DATE columns.
func (s *Scheduler) today() time.Time {
	local := s.now().In(s.cfg.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ReminderMessage builds the notification for a reminder.
func ReminderMessage(user *models.User, movie *models.Movie, channel string) notify.Notification {
	return notify.Notification{
		UserID:  user.ID,
		To:      user.Email,
		Subject: fmt.Sprintf("%s is releasing tomorrow!", movie.Title),
		Body: fmt.Sprintf("Hello %s,\n\nThis is a friendly reminder that the movie \"%s\" is releasing tomorrow. "+
			"Don't miss it!\n\nBest regards,\nMovie App Team", user.Username, movie.Title),
		Channel: channel,
	}
}

// RunOnce dispatches every reminder due today and marks each delivered one
// as sent. A failing reminder is logged and skipped; only a failure to load
// the due list is returned.
func (s *Scheduler) RunOnce(ctx context.Context) (RunResult, error) {
	start := time.Now()
	defer func() {
		metrics.ReminderRunDuration.Observe(time.Since(start).Seconds())
	}()

	day := s.today()
	due, err := s.reminders.FindDue(ctx, day)
	if err != nil {
		return RunResult{}, fmt.Errorf("find due reminders: %w", err)
	}

	res := RunResult{Due: len(due)}
	for _, rm := range due {
		if err := s.process(ctx, rm); err != nil {
			res.Failed++
			metrics.RemindersProcessed.WithLabelValues("failed").Inc()
			slog.Error("failed to process reminder",
				"reminder_id", rm.ID, "user_id", rm.UserID, "movie_id", rm.MovieID, "error", err)
			continue
		}
		res.Sent++
		metrics.RemindersProcessed.WithLabelValues("sent").Inc()
	}

	slog.Info("reminder run complete",
		"day", day.Format("2006-01-02"), "due", res.Due, "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

// process delivers one reminder. A panicking dispatcher is reported as a
// failure of that reminder only.
func (s *Scheduler) process(ctx context.Context, rm models.Reminder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch panic: %v", r)
		}
	}()

	user, err := s.users.GetByID(ctx, rm.UserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	movie, err := s.movies.GetByID(ctx, rm.MovieID)
	if err != nil {
		return fmt.Errorf("load movie: %w", err)
	}
	if err := s.dispatcher.Send(ctx, ReminderMessage(user, movie, rm.NotificationType)); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	if err := s.reminders.MarkSent(ctx, rm.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}

// Serve implements suture.Service. It sleeps until the next run time, runs,
// and repeats until ctx is cancelled.
func (s *Scheduler) Serve(ctx context.Context) error {
	if !s.cfg.Enabled {
		slog.Info("reminder scheduler disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		next := s.NextRun(s.now())
		slog.Info("next reminder run scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("reminder run failed", "error", err)
		}
	}
}

func (s *Scheduler) String() string {
	return "reminder-scheduler"
}
