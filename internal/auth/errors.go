package auth

import "errors"

var (
	// ErrMissingCredential means no bearer credential was presented.
	ErrMissingCredential = errors.New("missing credential")
	// ErrDecode means the credential is empty or not a decodable token.
	ErrDecode = errors.New("malformed credential")
	// ErrRevokedCredential means the ledger holds a revoked record for the credential.
	ErrRevokedCredential = errors.New("credential revoked")
	// ErrOwnershipMismatch means the caller is not the resource owner.
	ErrOwnershipMismatch = errors.New("not permitted")
	// ErrLedgerUnavailable is only returned when the unknown policy is deny.
	ErrLedgerUnavailable = errors.New("revocation ledger unavailable")
)

// OwnershipMismatchError carries both identities for diagnostics. Its message
// never includes them.
type OwnershipMismatchError struct {
	Owner  string
	Caller string
}

func (e *OwnershipMismatchError) Error() string {
	return ErrOwnershipMismatch.Error()
}

func (e *OwnershipMismatchError) Is(target error) bool {
	return target == ErrOwnershipMismatch
}

// ExternalAuthorityError wraps a failure reported by the identity authority.
// The authority's message is surfaced as is.
type ExternalAuthorityError struct {
	Op  string
	Err error
}

func (e *ExternalAuthorityError) Error() string {
	return e.Err.Error()
}

func (e *ExternalAuthorityError) Unwrap() error {
	return e.Err
}
