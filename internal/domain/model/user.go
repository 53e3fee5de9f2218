package model

import "time"

// User is an administrator account that can sign in to the portal.
// PasswordHash always holds a bcrypt hash; plaintext passwords are never
// stored or carried past the application layer.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
