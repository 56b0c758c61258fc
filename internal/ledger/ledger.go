// Package ledger records issued credentials and answers whether a presented
// credential has been revoked by an explicit sign-out.
//
// Records are written and revoked by access token. At request time the
// presented credential is resolved by either token: every store keeps both on
// the same record (primary key plus secondary index) so the two paths observe
// the same state.
package ledger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
)

// Store is the keyed storage the ledger runs on.
type Store interface {
	Get(ctx context.Context, accessToken string) (*domain.CredentialRecord, error)
	Put(ctx context.Context, record *domain.CredentialRecord) error
	MarkRevoked(ctx context.Context, accessToken string, at time.Time) error
	QueryByIDToken(ctx context.Context, idToken string) ([]domain.CredentialRecord, error)
}

// RevocationStatus is the tri-state answer of a ledger lookup.
type RevocationStatus int

const (
	// StatusUnknown means the store could not be read.
	StatusUnknown RevocationStatus = iota
	StatusActive
	StatusRevoked
)

func (s RevocationStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// RevokeResult reports what Revoke found.
type RevokeResult struct {
	Found          bool
	AlreadyRevoked bool
}

// LookupObserver receives the outcome of every status lookup.
type LookupObserver interface {
	ObserveLedgerLookup(status string)
}

// Ledger is the revocation ledger.
type Ledger struct {
	store    Store
	logger   *zap.Logger
	observer LookupObserver
	now      func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithObserver attaches a lookup observer.
func WithObserver(o LookupObserver) Option {
	return func(l *Ledger) { l.observer = o }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New constructs a ledger over store.
func New(store Store, logger *zap.Logger, opts ...Option) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordIssuance inserts an active record for a freshly issued credential.
// A second call with the same access token overwrites the first.
func (l *Ledger) RecordIssuance(ctx context.Context, accessToken, idToken string) error {
	if accessToken == "" || idToken == "" {
		return errors.New("ledger: access and id token required")
	}
	return l.store.Put(ctx, &domain.CredentialRecord{
		AccessToken: accessToken,
		IDToken:     idToken,
		Revoked:     false,
		IssuedAt:    l.now().UTC(),
	})
}

// Revoke marks the record for accessToken as revoked. A missing record is a
// successful no-op and nothing is created for it.
func (l *Ledger) Revoke(ctx context.Context, accessToken string) (RevokeResult, error) {
	record, err := l.store.Get(ctx, accessToken)
	if errors.Is(err, repository.ErrNotFound) {
		return RevokeResult{}, nil
	}
	if err != nil {
		return RevokeResult{}, err
	}
	if record.Revoked {
		return RevokeResult{Found: true, AlreadyRevoked: true}, nil
	}
	if err := l.store.MarkRevoked(ctx, accessToken, l.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RevokeResult{}, nil
		}
		return RevokeResult{}, err
	}
	return RevokeResult{Found: true}, nil
}

// Status resolves credential against the ledger. It is first tried as an
// access token (primary key) and otherwise as an ID token (secondary index).
func (l *Ledger) Status(ctx context.Context, credential string) RevocationStatus {
	status := l.status(ctx, credential)
	if l.observer != nil {
		l.observer.ObserveLedgerLookup(status.String())
	}
	return status
}

func (l *Ledger) status(ctx context.Context, credential string) RevocationStatus {
	record, err := l.store.Get(ctx, credential)
	switch {
	case err == nil:
		if record.Revoked {
			return StatusRevoked
		}
		return StatusActive
	case !errors.Is(err, repository.ErrNotFound):
		l.logger.Warn("revocation lookup failed", zap.Error(err))
		return StatusUnknown
	}

	records, err := l.store.QueryByIDToken(ctx, credential)
	if err != nil {
		l.logger.Warn("revocation lookup failed", zap.Error(err))
		return StatusUnknown
	}
	for _, record := range records {
		if record.IDToken == credential && record.Revoked {
			return StatusRevoked
		}
	}
	return StatusActive
}

// IsRevoked reports true only for a found, revoked record. Lookup failures
// answer false.
func (l *Ledger) IsRevoked(ctx context.Context, credential string) bool {
	return l.Status(ctx, credential) == StatusRevoked
}
