package service

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
)

// Authorizer decides whether a credential may change a protected resource.
type Authorizer interface {
	Authorize(ctx context.Context, op auth.Operation, credential string, owner *domain.SubjectIdentity) (auth.Decision, error)
}

// requireCredential rejects anonymous mutations before any lookup, so a
// missing credential never learns whether the target exists.
func requireCredential(credential string) error {
	if auth.StripScheme(credential) == "" {
		return auth.ErrMissingCredential
	}
	return nil
}
