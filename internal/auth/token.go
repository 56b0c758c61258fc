package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// TokenUse distinguishes access tokens from ID tokens.
type TokenUse string

const (
	TokenUseAccess TokenUse = "access"
	TokenUseID     TokenUse = "id"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute, now: time.Now}
}

// Claims describes JWT payload.
type Claims struct {
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	TokenUse TokenUse `json:"token_use"`
	jwt.RegisteredClaims
}

// Issue signs an access token and an ID token for the user and mints an
// opaque refresh token.
func (tm *TokenManager) Issue(user *domain.User) (*domain.TokenSet, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)

	access, err := tm.sign(&Claims{
		Username:         user.Username,
		TokenUse:         TokenUseAccess,
		RegisteredClaims: tm.registered(user.ID, issuedAt, expiresAt),
	})
	if err != nil {
		return nil, err
	}
	id, err := tm.sign(&Claims{
		Username:         user.Username,
		Email:            user.Email,
		TokenUse:         TokenUseID,
		RegisteredClaims: tm.registered(user.ID, issuedAt, expiresAt),
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenSet{
		AccessToken:  access,
		IDToken:      id,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    expiresAt,
	}, nil
}

func (tm *TokenManager) registered(subject string, issuedAt, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}
}

func (tm *TokenManager) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
