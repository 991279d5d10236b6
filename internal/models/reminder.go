package models

import "time"

// Notification channels.
const (
	ChannelEmail     = "email"
	ChannelDashboard = "dashboard"
)

// Reminder asks for a notification the day before a movie's release.
type Reminder struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	MovieID          string    `json:"movieId"`
	ReminderDate     time.Time `json:"reminderDate"`
	NotificationType string    `json:"notificationType"`
	Sent             bool      `json:"sent"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateReminderRequest is the payload for subscribing to a release.
type CreateReminderRequest struct {
	MovieID          string `json:"movieId" validate:"required,uuid"`
	NotificationType string `json:"notificationType" validate:"omitempty,oneof=email dashboard"`
}

// UpdateReminderRequest changes the movie or channel of a reminder.
type UpdateReminderRequest struct {
	MovieID          *string `json:"movieId" validate:"omitempty,uuid"`
	NotificationType *string `json:"notificationType" validate:"omitempty,oneof=email dashboard"`
}

// DashboardNotification is an entry in a user's in-app feed.
type DashboardNotification struct {
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
