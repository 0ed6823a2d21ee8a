package domain

import "time"

// User is a durable account record. Username and email are each globally
// unique and either one can be used as the login identifier.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // argon2id PHC encoded, never serialized
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity for the duration of one request.
// It is built fresh per request from the user record and discarded when the
// request ends; nothing caches it across requests.
type Principal struct {
	Username string
	Email    string
	Role     Role
}
