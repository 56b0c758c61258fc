package domain

import "time"

// SubjectIdentity is the subject claim decoded from a bearer credential.
type SubjectIdentity string

// String returns the raw subject value.
func (s SubjectIdentity) String() string {
	return string(s)
}

// TokenSet is the bundle returned by the identity authority on sign-in.
type TokenSet struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// CredentialRecord is one ledger entry per issued access credential.
// It is addressable by AccessToken (primary key) and by IDToken (secondary index).
type CredentialRecord struct {
	AccessToken string
	IDToken     string
	Revoked     bool
	IssuedAt    time.Time
	RevokedAt   *time.Time
}
