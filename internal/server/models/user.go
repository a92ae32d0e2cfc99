// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account row. PasswordHash is an argon2id digest of the
// password under Salt.
type User struct {
	ID           string
	UserName     string
	Salt         []byte
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
}
