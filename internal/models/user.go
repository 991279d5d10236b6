package models

import (
	"strings"
	"time"
)

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MoviePreferences are the tag sets a user likes.
type MoviePreferences struct {
	Genres    []string `json:"genre"`
	Directors []string `json:"director"`
	Actors    []string `json:"actor"`
}

// IsEmpty reports whether no preference has been expressed. Blank entries
// do not count.
func (p MoviePreferences) IsEmpty() bool {
	for _, tags := range [][]string{p.Genres, p.Directors, p.Actors} {
		for _, tag := range tags {
			if strings.TrimSpace(tag) != "" {
				return false
			}
		}
	}
	return true
}

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID               string           `json:"id"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	Role             string           `json:"role"`
	ProfilePhoto     string           `json:"profilePhoto"`
	MoviePreferences MoviePreferences `json:"moviePreferences"`
	PersonalWishlist []string         `json:"personalWishlist"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username         string           `json:"username" validate:"required,min=3,max=50"`
	Email            string           `json:"email" validate:"required,email"`
	Password         string           `json:"password" validate:"required,min=8,max=72"`
	ProfilePhoto     string           `json:"profilePhoto" validate:"omitempty,url"`
	MoviePreferences MoviePreferences `json:"moviePreferences"`
	PersonalWishlist []string         `json:"personalWishlist" validate:"dive,uuid"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on register and login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UserPatch lists the profile fields a user may change.
type UserPatch struct {
	Username         *string           `json:"username" validate:"omitempty,min=3,max=50"`
	Email            *string           `json:"email" validate:"omitempty,email"`
	ProfilePhoto     *string           `json:"profilePhoto" validate:"omitempty,url"`
	MoviePreferences *MoviePreferences `json:"moviePreferences"`
	PersonalWishlist *[]string         `json:"personalWishlist" validate:"omitempty,dive,uuid"`
}
