package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/identity"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// translateError maps service and auth errors onto the error envelope.
// Ownership denials never carry the owner or caller identity.
func translateError(err error) *apperrors.DomainError {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError(fiberCode(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}

	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return apperrors.NewUnauthorized(apperrors.CodeMissingCredential, "credential required")
	case errors.Is(err, auth.ErrDecode):
		return apperrors.NewUnauthorized(apperrors.CodeInvalidCredential, "invalid credential").Wrap(err)
	case errors.Is(err, auth.ErrRevokedCredential):
		return apperrors.NewUnauthorized(apperrors.CodeCredentialRevoked, "credential has been revoked")
	case errors.Is(err, auth.ErrOwnershipMismatch):
		return apperrors.NewForbidden(apperrors.CodeNotPermitted, "not permitted")
	case errors.Is(err, auth.ErrLedgerUnavailable):
		return apperrors.NewServiceUnavailable(apperrors.CodeLedgerUnavailable, "revocation status unavailable")
	}

	var authorityErr *auth.ExternalAuthorityError
	if errors.As(err, &authorityErr) {
		if identity.IsRejection(authorityErr.Err) {
			return apperrors.NewDomainError(apperrors.CodeAuthorityRejected, authorityErr.Error(), http.StatusBadRequest, nil)
		}
		return apperrors.NewBadGateway(apperrors.CodeAuthorityUnavailable, "identity authority unavailable").Wrap(err)
	}

	return apperrors.ToDomainError(err)
}

func fiberCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.CodeValidation
	case http.StatusNotFound:
		return apperrors.CodeNotFound
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestTimeout:
		return "REQUEST_TIMEOUT"
	default:
		if status >= http.StatusInternalServerError {
			return apperrors.CodeInternal
		}
		return "REQUEST_FAILED"
	}
}
