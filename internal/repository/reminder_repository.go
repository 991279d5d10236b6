package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"movie-recommendation-service/internal/models"
)

const reminderNotFound = "reminder not found"

const reminderColumns = `id, user_id, movie_id, reminder_date, notification_type, sent, created_at`

// ReminderRepository handles database operations for release reminders.
type ReminderRepository struct {
	db *sql.DB
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func scanReminder(row scanner) (*models.Reminder, error) {
	var rm models.Reminder
	if err := row.Scan(&rm.ID, &rm.UserID, &rm.MovieID, &rm.ReminderDate,
		&rm.NotificationType, &rm.Sent, &rm.CreatedAt); err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *ReminderRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]models.Reminder, 0)
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, *rm)
	}
	return reminders, rows.Err()
}

// Create inserts a reminder and fills in its ID.
func (r *ReminderRepository) Create(ctx context.Context, rm *models.Reminder) error {
	rm.ID = newID()
	rm.CreatedAt = time.Now().UTC()
	rm.Sent = false

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, user_id, movie_id, reminder_date, notification_type, sent, created_at)
		VALUES ($1, $2, $3, $4::date, $5, FALSE, $6)
	`, rm.ID, rm.UserID, rm.MovieID, rm.ReminderDate.Format("2006-01-02"), rm.NotificationType, rm.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

// GetByID returns a reminder by ID.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	rm, err := scanReminder(r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, reminderNotFound)
	}
	return rm, nil
}

// ListByUser returns a user's reminders ordered by reminder date.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	reminders, err := r.query(ctx, `
		SELECT `+reminderColumns+` FROM reminders WHERE user_id = $1 ORDER BY reminder_date, id
	`, userID)
	if err != nil {
		return nil, translate(err, reminderNotFound)
	}
	return reminders, nil
}

// Update rewrites a reminder's movie, date and channel. The sent flag is
// only ever set by MarkSent.
func (r *ReminderRepository) Update(ctx context.Context, rm *models.Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET movie_id = $2, reminder_date = $3::date, notification_type = $4
		WHERE id = $1
	`, rm.ID, rm.MovieID, rm.ReminderDate.Format("2006-01-02"), rm.NotificationType)
	if err != nil {
		return translate(err, reminderNotFound)
	}
	return expectAffected(res, reminderNotFound)
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return translate(err, reminderNotFound)
	}
	return expectAffected(res, reminderNotFound)
}

// FindDue returns unsent reminders whose date equals day (date part only).
func (r *ReminderRepository) FindDue(ctx context.Context, day time.Time) ([]models.Reminder, error) {
	reminders, err := r.query(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE reminder_date = $1::date AND sent = FALSE
		ORDER BY created_at, id
	`, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("find due reminders: %w", err)
	}
	return reminders, nil
}

// MarkSent flags a reminder as delivered.
func (r *ReminderRepository) MarkSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return translate(err, reminderNotFound)
	}
	return expectAffected(res, reminderNotFound)
}
