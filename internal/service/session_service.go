package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/identity"
	"github.com/spec-kit/catalog-service/internal/ledger"
)

// SessionLedger is the part of the revocation ledger used at sign-in/sign-out.
type SessionLedger interface {
	RecordIssuance(ctx context.Context, accessToken, idToken string) error
	Revoke(ctx context.Context, accessToken string) (ledger.RevokeResult, error)
}

// SessionService drives sign-up, sign-in and sign-out against the identity
// authority and keeps the revocation ledger in step.
type SessionService struct {
	authority  identity.Authority
	ledger     SessionLedger
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// SessionDependencies bundles collaborators for the session service.
type SessionDependencies struct {
	Authority  identity.Authority
	Ledger     SessionLedger
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		authority:  deps.Authority,
		ledger:     deps.Ledger,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register forwards sign-up to the authority.
func (s *SessionService) Register(ctx context.Context, username, password, email string) error {
	if err := s.authority.Register(ctx, username, password, email); err != nil {
		return &auth.ExternalAuthorityError{Op: "register", Err: err}
	}
	return nil
}

// Confirm forwards sign-up confirmation to the authority.
func (s *SessionService) Confirm(ctx context.Context, username, code string) error {
	if err := s.authority.Confirm(ctx, username, code); err != nil {
		return &auth.ExternalAuthorityError{Op: "confirm", Err: err}
	}
	return nil
}

// SignIn obtains tokens from the authority and records them in the ledger.
// A ledger write failure is logged and does not fail the sign-in.
func (s *SessionService) SignIn(ctx context.Context, username, password string) (*domain.TokenSet, error) {
	tokens, err := s.authority.IssueTokens(ctx, username, password)
	if err != nil {
		return nil, &auth.ExternalAuthorityError{Op: "sign_in", Err: err}
	}

	recorded := true
	if err := s.ledger.RecordIssuance(ctx, tokens.AccessToken, tokens.IDToken); err != nil {
		recorded = false
		s.logger.Error("record credential issuance failed", zap.String("username", username), zap.Error(err))
	}

	s.publish(ctx, events.EventSessionStarted, events.SessionStartedPayload{
		Username:       username,
		LedgerRecorded: recorded,
	})
	return tokens, nil
}

// SignOut asks the authority to invalidate the session, then revokes the
// ledger record whatever the authority answered. Only the authority's
// failure is returned.
func (s *SessionService) SignOut(ctx context.Context, accessToken string) error {
	authorityErr := s.authority.GlobalInvalidate(ctx, accessToken)

	result, ledgerErr := s.ledger.Revoke(ctx, accessToken)
	if ledgerErr != nil {
		s.logger.Error("revoke credential failed", zap.Error(ledgerErr))
	} else if !result.Found {
		s.logger.Debug("sign-out for credential without ledger record")
	}

	s.publish(ctx, events.EventSessionEnded, events.SessionEndedPayload{
		AuthorityInvalidated: authorityErr == nil,
		LedgerRecordFound:    result.Found,
		LedgerUpdated:        ledgerErr == nil && result.Found && !result.AlreadyRevoked,
	})

	if authorityErr != nil {
		return &auth.ExternalAuthorityError{Op: "sign_out", Err: authorityErr}
	}
	return nil
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("publish event failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
