package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/ledger"
)

// Operation is the kind of change requested against a protected resource.
type Operation int

const (
	OperationCreate Operation = iota + 1
	OperationUpdate
	OperationDelete
)

func (o Operation) String() string {
	switch o {
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// Decision is an allow verdict. Subject is the caller's decoded identity; on
// create it becomes the new resource's owner.
type Decision struct {
	Operation Operation
	Subject   domain.SubjectIdentity
}

// RevocationChecker answers revocation lookups for a presented credential,
// which may be either token of an issued pair.
type RevocationChecker interface {
	Status(ctx context.Context, credential string) ledger.RevocationStatus
}

// DecisionObserver receives every authorization outcome.
type DecisionObserver interface {
	ObserveDecision(operation, outcome string)
}

// UnknownPolicy decides update/delete when the ledger cannot answer.
type UnknownPolicy int

const (
	// FailOpen treats an unreadable ledger as "not revoked".
	FailOpen UnknownPolicy = iota
	FailClosed
)

// LegacyOwnerPolicy decides update/delete on resources that carry no owner.
type LegacyOwnerPolicy int

const (
	// LegacyLocked compares against the empty subject, which no real caller has.
	LegacyLocked LegacyOwnerPolicy = iota
	// LegacyOpen lets any caller with a decodable credential modify them.
	LegacyOpen
)

// Guard enforces that only a resource's creator may update or delete it, and
// that signed-out credentials can no longer do so.
type Guard struct {
	decoder  CredentialDecoder
	ledger   RevocationChecker
	unknown  UnknownPolicy
	legacy   LegacyOwnerPolicy
	logger   *zap.Logger
	observer DecisionObserver
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithUnknownPolicy sets the policy applied to unknown ledger status.
func WithUnknownPolicy(p UnknownPolicy) GuardOption {
	return func(g *Guard) { g.unknown = p }
}

// WithLegacyOwnerPolicy sets the policy for untagged resources.
func WithLegacyOwnerPolicy(p LegacyOwnerPolicy) GuardOption {
	return func(g *Guard) { g.legacy = p }
}

// WithDecisionObserver attaches an observer.
func WithDecisionObserver(o DecisionObserver) GuardOption {
	return func(g *Guard) { g.observer = o }
}

// NewGuard constructs a guard. Defaults: FailOpen, LegacyLocked.
func NewGuard(decoder CredentialDecoder, checker RevocationChecker, logger *zap.Logger, opts ...GuardOption) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Guard{decoder: decoder, ledger: checker, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize decides whether the holder of credential may perform op on a
// resource owned by owner. owner is nil for creates and for untagged rows.
func (g *Guard) Authorize(ctx context.Context, op Operation, credential string, owner *domain.SubjectIdentity) (Decision, error) {
	decision, err := g.authorize(ctx, op, credential, owner)
	if g.observer != nil {
		g.observer.ObserveDecision(op.String(), outcome(err))
	}
	return decision, err
}

func (g *Guard) authorize(ctx context.Context, op Operation, credential string, owner *domain.SubjectIdentity) (Decision, error) {
	token := StripScheme(credential)
	if token == "" {
		return Decision{}, ErrMissingCredential
	}

	switch op {
	case OperationCreate:
		subject, err := g.decoder.Decode(token)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Operation: op, Subject: subject}, nil

	case OperationUpdate, OperationDelete:
		// revocation is checked before the credential is decoded
		switch g.ledger.Status(ctx, token) {
		case ledger.StatusRevoked:
			return Decision{}, ErrRevokedCredential
		case ledger.StatusUnknown:
			if g.unknown == FailClosed {
				return Decision{}, ErrLedgerUnavailable
			}
			g.logger.Warn("revocation status unknown, allowing", zap.Stringer("operation", op))
		}

		subject, err := g.decoder.Decode(token)
		if err != nil {
			return Decision{}, err
		}

		var expected domain.SubjectIdentity
		if owner != nil {
			expected = *owner
		} else if g.legacy == LegacyOpen {
			return Decision{Operation: op, Subject: subject}, nil
		}

		if subject != expected {
			g.logger.Info("ownership mismatch",
				zap.Stringer("operation", op),
				zap.String("owner", expected.String()),
				zap.String("caller", subject.String()),
				zap.Bool("legacy", owner == nil))
			return Decision{}, &OwnershipMismatchError{Owner: expected.String(), Caller: subject.String()}
		}
		return Decision{Operation: op, Subject: subject}, nil

	default:
		return Decision{}, fmt.Errorf("auth: unsupported operation %s", op)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "allow"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrDecode):
		return "invalid_credential"
	case errors.Is(err, ErrRevokedCredential):
		return "revoked"
	case errors.Is(err, ErrOwnershipMismatch):
		return "ownership_mismatch"
	case errors.Is(err, ErrLedgerUnavailable):
		return "ledger_unavailable"
	default:
		return "error"
	}
}
