package auth

import "time"

// User is a registered collector account. The username is immutable once
// registered; the password hash is mutated only via the admin reset.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
