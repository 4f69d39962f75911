package models

import "time"

// Room identifies the chat channel a command was issued in.
type Room struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name,omitempty"`
}

// User identifies the chat user who issued a command.
type User struct {
	ID       string `json:"id" validate:"required"`
	Username string `json:"username,omitempty"`
}

// AccessToken is a remote API credential stored for a chat user.
type AccessToken struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the token has a known expiry that lies before now.
func (t AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
