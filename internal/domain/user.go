package domain

import "time"

// UserStatus represents the sign-up lifecycle of an identity account.
type UserStatus string

const (
	UserStatusPending   UserStatus = "PENDING"
	UserStatusConfirmed UserStatus = "CONFIRMED"
)

// User is an account held by the local identity authority.
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	Status           UserStatus
	ConfirmationCode string
	TokensValidAfter time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
