// Package identity holds the identity authority that issues and invalidates
// credentials. The rest of the service only sees the Authority interface.
package identity

import (
	"context"
	"errors"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// Authority is the external identity provider contract.
type Authority interface {
	Register(ctx context.Context, username, password, email string) error
	Confirm(ctx context.Context, username, code string) error
	IssueTokens(ctx context.Context, username, password string) (*domain.TokenSet, error)
	GlobalInvalidate(ctx context.Context, accessToken string) error
}

var (
	ErrUsernameExists     = errors.New("User already exists")
	ErrInvalidPassword    = errors.New("Password does not conform to policy")
	ErrNotAuthorized      = errors.New("Incorrect username or password.")
	ErrUserNotConfirmed   = errors.New("User is not confirmed.")
	ErrCodeMismatch       = errors.New("Invalid verification code provided, please try again.")
	ErrInvalidAccessToken = errors.New("Invalid Access Token")
	ErrTokenRevoked       = errors.New("Access Token has been revoked")
)

var rejections = []error{
	ErrUsernameExists,
	ErrInvalidPassword,
	ErrNotAuthorized,
	ErrUserNotConfirmed,
	ErrCodeMismatch,
	ErrInvalidAccessToken,
	ErrTokenRevoked,
}

// IsRejection reports whether err is a refusal by the authority rather than
// an infrastructure failure.
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
