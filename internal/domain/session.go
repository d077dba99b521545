package domain

import "time"

// Session is the server-side record behind a session cookie. Name and Email
// are copied from the user at login time, not live references.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ExpiresAt     time.Time `json:"expires_at"`
}
