package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
)

// SessionService is the session lifecycle used by AuthHandler.
type SessionService interface {
	Register(ctx context.Context, username, password, email string) error
	Confirm(ctx context.Context, username, code string) error
	SignIn(ctx context.Context, username, password string) (*domain.TokenSet, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthHandler exposes sign-up, sign-in and sign-out.
type AuthHandler struct {
	sessions SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.sessions.Register(c.UserContext(), req.Username, req.Password, req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.MessageResponse{Message: "User registered successfully"},
	})
}

// Confirm handles POST /auth/confirm.
func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.sessions.Confirm(c.UserContext(), req.Username, req.ConfirmationCode); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.MessageResponse{Message: "User confirmed successfully"},
	})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	tokens, err := h.sessions.SignIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.TokenResponse{
			AccessToken:  tokens.AccessToken,
			IDToken:      tokens.IDToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresAt:    tokens.ExpiresAt,
		},
	})
}

// SignOut handles POST /auth/signout.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	var req dto.SignOutRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.sessions.SignOut(c.UserContext(), req.AccessToken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.MessageResponse{Message: "User signed out successfully"},
	})
}

// Protected handles GET /auth/protected. It runs behind Authenticate and greets
// the username claim, falling back to the subject.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	subject, ok := auth.SubjectFromContext(c)
	if !ok {
		return auth.ErrMissingCredential
	}
	name := auth.UsernameFromContext(c)
	if name == "" {
		name = subject.String()
	}
	return c.JSON(fiber.Map{
		"data": dto.MessageResponse{
			Message: fmt.Sprintf("Hello, %s. You have accessed a protected endpoint.", name),
		},
	})
}
