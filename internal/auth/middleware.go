package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/domain"
)

const (
	credentialKey = "auth_credential"
	subjectKey    = "auth_subject"
	usernameKey   = "auth_username"
)

// Middleware reads bearer credentials from the Authorization header.
type Middleware struct {
	decoder CredentialDecoder
}

// NewMiddleware constructs middleware.
func NewMiddleware(decoder CredentialDecoder) *Middleware {
	return &Middleware{decoder: decoder}
}

// Extract stores the presented credential, if any, for the handlers. A
// missing or empty header is stored as the empty string.
func (m *Middleware) Extract(c *fiber.Ctx) error {
	c.Locals(credentialKey, StripScheme(c.Get(fiber.HeaderAuthorization)))
	return c.Next()
}

// Authenticate requires a decodable credential and stores its subject.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	credential := StripScheme(c.Get(fiber.HeaderAuthorization))
	if credential == "" {
		return ErrMissingCredential
	}
	subject, err := m.decoder.Decode(credential)
	if err != nil {
		return err
	}
	c.Locals(credentialKey, credential)
	c.Locals(subjectKey, subject)
	c.Locals(usernameKey, usernameClaim(credential))
	return c.Next()
}

// CredentialFromContext returns the credential stored by Extract or Authenticate.
func CredentialFromContext(c *fiber.Ctx) string {
	if v, ok := c.Locals(credentialKey).(string); ok {
		return v
	}
	return StripScheme(c.Get(fiber.HeaderAuthorization))
}

// SubjectFromContext retrieves the subject stored by Authenticate.
func SubjectFromContext(c *fiber.Ctx) (domain.SubjectIdentity, bool) {
	subject, ok := c.Locals(subjectKey).(domain.SubjectIdentity)
	return subject, ok
}

// UsernameFromContext returns the username claim of the credential accepted by
// Authenticate, or "" when it carries none.
func UsernameFromContext(c *fiber.Ctx) string {
	username, _ := c.Locals(usernameKey).(string)
	return username
}
