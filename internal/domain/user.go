package domain

import "time"

// User is the domain entity for a registered account. PasswordHash only ever
// holds bcrypt output; the raw password never reaches this type.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
