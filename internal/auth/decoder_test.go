package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func signedToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func TestStripScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "abc", want: "abc"},
		{in: "Bearer abc", want: "abc"},
		{in: "bearer   abc ", want: "abc"},
		{in: "BEARER abc", want: "abc"},
		{in: "Bearer", want: ""},
		{in: "Bearer ", want: ""},
		{in: "Bearer\tabc", want: "abc"},
		{in: "Bearer \t  abc", want: "abc"},
		{in: "\tbearer\nabc", want: "abc"},
		{in: "Bearerabc", want: "Bearerabc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripScheme(tt.in), "input %q", tt.in)
	}
}

func TestUnverifiedDecoder(t *testing.T) {
	d := NewUnverifiedDecoder()

	t.Run("reads sub from any well-formed token", func(t *testing.T) {
		token := signedToken(t, "someone-elses-key", jwt.MapClaims{"sub": "u1"})
		subject, err := d.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity("u1"), subject)
	})

	t.Run("accepts the bearer form", func(t *testing.T) {
		token := signedToken(t, "k", jwt.MapClaims{"sub": "u2"})
		subject, err := d.Decode("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity("u2"), subject)
	})

	t.Run("accepts a tab after the scheme", func(t *testing.T) {
		token := signedToken(t, "k", jwt.MapClaims{"sub": "u2"})
		subject, err := d.Decode("Bearer\t" + token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity("u2"), subject)
	})

	t.Run("ignores expiry", func(t *testing.T) {
		token := signedToken(t, "k", jwt.MapClaims{"sub": "u3", "exp": time.Now().Add(-time.Hour).Unix()})
		subject, err := d.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity("u3"), subject)
	})

	t.Run("missing sub decodes to the empty subject", func(t *testing.T) {
		token := signedToken(t, "k", jwt.MapClaims{"email": "x@example.com"})
		subject, err := d.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, domain.SubjectIdentity(""), subject)
	})

	for name, raw := range map[string]string{
		"empty":          "",
		"blank":          "   ",
		"garbage":        "not-a-jwt",
		"bad segments":   "a.b.c",
		"non-string sub": signedToken(t, "k", jwt.MapClaims{"sub": 42}),
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := d.Decode(raw)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestVerifyingDecoder(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	d := NewVerifyingDecoder(tm)

	tokens, err := tm.Issue(&domain.User{ID: "u1", Username: "evan", Email: "evan@example.com"})
	require.NoError(t, err)

	subject, err := d.Decode("Bearer " + tokens.IDToken)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectIdentity("u1"), subject)

	forged := signedToken(t, "other", jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	_, err = d.Decode(forged)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = d.Decode("")
	assert.ErrorIs(t, err, ErrDecode)
}
