package auth

import (
	"context"
	"errors"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/ledger"
	"github.com/spec-kit/catalog-service/internal/repository"
)

type stubChecker struct {
	status ledger.RevocationStatus
	calls  []string
}

func (s *stubChecker) Status(_ context.Context, credential string) ledger.RevocationStatus {
	s.calls = append(s.calls, credential)
	return s.status
}

type decisionRecorder struct {
	outcomes []string
}

func (r *decisionRecorder) ObserveDecision(operation, outcome string) {
	r.outcomes = append(r.outcomes, operation+":"+outcome)
}

type brokenDecoder struct{}

func (brokenDecoder) Decode(string) (domain.SubjectIdentity, error) {
	return "", errors.New("decoder must not be reached")
}

func credentialFor(t *testing.T, subject string) string {
	t.Helper()
	return signedToken(t, "issuer-key", jwt.MapClaims{"sub": subject})
}

func owner(s string) *domain.SubjectIdentity {
	subject := domain.SubjectIdentity(s)
	return &subject
}

func TestGuard_MissingCredential(t *testing.T) {
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)

	for _, op := range []Operation{OperationCreate, OperationUpdate, OperationDelete} {
		for _, raw := range []string{"", "   ", "Bearer    "} {
			_, err := g.Authorize(context.Background(), op, raw, owner("u1"))
			assert.ErrorIs(t, err, ErrMissingCredential, "op=%s raw=%q", op, raw)
		}
	}
}

func TestGuard_CreateIgnoresRevocation(t *testing.T) {
	checker := &stubChecker{status: ledger.StatusRevoked}
	g := NewGuard(NewUnverifiedDecoder(), checker, nil)

	decision, err := g.Authorize(context.Background(), OperationCreate, "Bearer "+credentialFor(t, "u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OperationCreate, decision.Operation)
	assert.Equal(t, domain.SubjectIdentity("u1"), decision.Subject)
	assert.Empty(t, checker.calls)
}

func TestGuard_CreateRejectsMalformed(t *testing.T) {
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)
	_, err := g.Authorize(context.Background(), OperationCreate, "Bearer nonsense", nil)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGuard_OwnerMayMutate(t *testing.T) {
	checker := &stubChecker{status: ledger.StatusActive}
	g := NewGuard(NewUnverifiedDecoder(), checker, nil)
	credential := credentialFor(t, "u1")

	for _, op := range []Operation{OperationUpdate, OperationDelete} {
		decision, err := g.Authorize(context.Background(), op, "Bearer "+credential, owner("u1"))
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity("u1"), decision.Subject)
	}
	// the ledger sees the stripped credential
	assert.Equal(t, []string{credential, credential}, checker.calls)
}

func TestGuard_MismatchNeverLeaksOwner(t *testing.T) {
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)

	_, err := g.Authorize(context.Background(), OperationUpdate, credentialFor(t, "user-99"), owner("user-42"))
	require.ErrorIs(t, err, ErrOwnershipMismatch)
	assert.NotContains(t, err.Error(), "user-42")
	assert.NotContains(t, err.Error(), "user-99")

	var mismatch *OwnershipMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "user-42", mismatch.Owner)
	assert.Equal(t, "user-99", mismatch.Caller)
}

func TestGuard_RevocationCheckedBeforeOwnership(t *testing.T) {
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusRevoked}, nil)

	_, err := g.Authorize(context.Background(), OperationDelete, credentialFor(t, "user-99"), owner("user-42"))
	assert.ErrorIs(t, err, ErrRevokedCredential)
}

func TestGuard_RevocationCheckedBeforeDecode(t *testing.T) {
	g := NewGuard(brokenDecoder{}, &stubChecker{status: ledger.StatusRevoked}, nil)

	_, err := g.Authorize(context.Background(), OperationUpdate, "anything", owner("u1"))
	assert.ErrorIs(t, err, ErrRevokedCredential)
}

func TestGuard_MalformedCredentialOnUpdate(t *testing.T) {
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)
	_, err := g.Authorize(context.Background(), OperationUpdate, "Bearer nonsense", owner("u1"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGuard_UnknownStatusPolicy(t *testing.T) {
	credential := credentialFor(t, "u1")

	t.Run("fail open by default", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusUnknown}, zap.New(core))

		_, err := g.Authorize(context.Background(), OperationUpdate, credential, owner("u1"))
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("revocation status unknown, allowing").Len())
	})

	t.Run("fail closed", func(t *testing.T) {
		g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusUnknown}, nil, WithUnknownPolicy(FailClosed))

		_, err := g.Authorize(context.Background(), OperationUpdate, credential, owner("u1"))
		assert.ErrorIs(t, err, ErrLedgerUnavailable)
	})
}

func TestGuard_LegacyResources(t *testing.T) {
	credential := credentialFor(t, "u1")

	t.Run("locked by default", func(t *testing.T) {
		g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)
		_, err := g.Authorize(context.Background(), OperationDelete, credential, nil)
		assert.ErrorIs(t, err, ErrOwnershipMismatch)
	})

	t.Run("a credential without sub matches the empty sentinel", func(t *testing.T) {
		g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)
		noSub := signedToken(t, "k", jwt.MapClaims{"email": "x@example.com"})
		_, err := g.Authorize(context.Background(), OperationDelete, noSub, nil)
		assert.NoError(t, err)
	})

	t.Run("open policy", func(t *testing.T) {
		g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil, WithLegacyOwnerPolicy(LegacyOpen))
		decision, err := g.Authorize(context.Background(), OperationUpdate, credential, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity("u1"), decision.Subject)

		_, err = g.Authorize(context.Background(), OperationUpdate, credentialFor(t, "u2"), owner("u1"))
		assert.ErrorIs(t, err, ErrOwnershipMismatch)
	})
}

func TestGuard_UnsupportedOperation(t *testing.T) {
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil)
	_, err := g.Authorize(context.Background(), Operation(99), credentialFor(t, "u1"), nil)
	assert.Error(t, err)
}

func TestGuard_ObservesOutcomes(t *testing.T) {
	recorder := &decisionRecorder{}
	g := NewGuard(NewUnverifiedDecoder(), &stubChecker{status: ledger.StatusActive}, nil, WithDecisionObserver(recorder))

	_, _ = g.Authorize(context.Background(), OperationCreate, credentialFor(t, "u1"), nil)
	_, _ = g.Authorize(context.Background(), OperationUpdate, "", owner("u1"))
	_, _ = g.Authorize(context.Background(), OperationDelete, credentialFor(t, "u2"), owner("u1"))

	assert.Equal(t, []string{
		"create:allow",
		"update:missing_credential",
		"delete:ownership_mismatch",
	}, recorder.outcomes)
}

func TestGuard_SignOutRevokesBothTokenForms(t *testing.T) {
	ctx := context.Background()
	revocations := ledger.New(repository.NewMemoryCredentialRepository(), nil)
	g := NewGuard(NewUnverifiedDecoder(), revocations, nil)

	accessToken := signedToken(t, "issuer-key", jwt.MapClaims{"sub": "u1", "token_use": "access"})
	idToken := signedToken(t, "issuer-key", jwt.MapClaims{"sub": "u1", "token_use": "id"})
	require.NoError(t, revocations.RecordIssuance(ctx, accessToken, idToken))

	created, err := g.Authorize(ctx, OperationCreate, "Bearer "+idToken, nil)
	require.NoError(t, err)
	resourceOwner := created.Subject

	_, err = g.Authorize(ctx, OperationUpdate, "Bearer "+idToken, &resourceOwner)
	require.NoError(t, err)

	_, err = revocations.Revoke(ctx, accessToken)
	require.NoError(t, err)

	_, err = g.Authorize(ctx, OperationUpdate, "Bearer "+idToken, &resourceOwner)
	assert.ErrorIs(t, err, ErrRevokedCredential)
	_, err = g.Authorize(ctx, OperationDelete, "Bearer "+accessToken, &resourceOwner)
	assert.ErrorIs(t, err, ErrRevokedCredential)

	// create is not gated on revocation
	_, err = g.Authorize(ctx, OperationCreate, "Bearer "+idToken, nil)
	assert.NoError(t, err)
}
