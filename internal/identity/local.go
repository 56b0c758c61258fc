package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
)

// LocalAuthority is a self-hosted identity provider backed by the users table.
type LocalAuthority struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// LocalDependencies bundles collaborators for the local authority.
type LocalDependencies struct {
	Users      repository.UserRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
}

// NewLocalAuthority builds the authority.
func NewLocalAuthority(deps LocalDependencies) *LocalAuthority {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cost := deps.BcryptCost
	if cost <= 0 {
		cost = 12
	}
	return &LocalAuthority{
		users:      deps.Users,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cost,
		now:        time.Now,
	}
}

// Register creates a pending account and dispatches its confirmation code.
func (a *LocalAuthority) Register(ctx context.Context, username, password, email string) error {
	if err := checkPasswordPolicy(password); err != nil {
		return err
	}
	hash, err := hashPassword(password, a.bcryptCost)
	if err != nil {
		return err
	}
	code, err := confirmationCode()
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Status:           domain.UserStatusPending,
		ConfirmationCode: code,
	}
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrUsernameExists
		}
		return err
	}

	a.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		Subject: user.ID,
		Payload: events.UserRegisteredPayload{Username: username, Email: email, ConfirmationCode: code},
	})
	return nil
}

// Confirm activates a pending account when the code matches.
func (a *LocalAuthority) Confirm(ctx context.Context, username, code string) error {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if user.Status == domain.UserStatusConfirmed {
		return nil
	}
	if code == "" || user.ConfirmationCode != code {
		return ErrCodeMismatch
	}
	return a.users.MarkConfirmed(ctx, user.ID)
}

// IssueTokens authenticates a confirmed user by password.
func (a *LocalAuthority) IssueTokens(ctx context.Context, username, password string) (*domain.TokenSet, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	if err := comparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrNotAuthorized
	}
	if user.Status != domain.UserStatusConfirmed {
		return nil, ErrUserNotConfirmed
	}
	return a.tokens.Issue(user)
}

// GlobalInvalidate rejects every token issued to the access token's subject
// up to now.
func (a *LocalAuthority) GlobalInvalidate(ctx context.Context, accessToken string) error {
	claims, err := a.tokens.ParseToken(accessToken)
	if err != nil || claims.TokenUse != auth.TokenUseAccess {
		return ErrInvalidAccessToken
	}
	user, err := a.users.GetByID(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidAccessToken
	}
	if err != nil {
		return err
	}
	if claims.IssuedAt != nil && claims.IssuedAt.Time.Before(user.TokensValidAfter) {
		return ErrTokenRevoked
	}
	// iat has second precision
	return a.users.SetTokensValidAfter(ctx, user.ID, a.now().UTC().Truncate(time.Second))
}

func (a *LocalAuthority) publish(ctx context.Context, event events.Event) {
	if a.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = a.now().UTC()
	if err := a.dispatcher.Publish(ctx, event); err != nil {
		a.logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func confirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
