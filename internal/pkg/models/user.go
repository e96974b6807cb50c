package models

import (
	"time"
)

// User represents a registered rider or driver
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of the user that is safe to render
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// PassengerSummary is the snapshot of a user kept on a booked trip
type PassengerSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// Summary returns the passenger snapshot of the user
func (u User) Summary() PassengerSummary {
	return PassengerSummary{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

// Session ties a bearer token to a user until logout or expiry
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at t
func (s Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && !t.Before(s.ExpiresAt)
}

// SignupRequest represents the signup payload
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful signup or login
type AuthResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}
