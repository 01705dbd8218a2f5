package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered citizen account.
type User struct {
	ID           int64
	Fullname     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Admin is a back-office account. Admins are never created through the
// public API; the bootstrap seeder inserts the first one.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
