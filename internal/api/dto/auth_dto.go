package dto

import "time"

// RegisterRequest payload for sign-up.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// ConfirmRequest payload for sign-up confirmation.
type ConfirmRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmationCode" validate:"required,numeric,len=6"`
}

// SignInRequest payload for sign-in.
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignOutRequest payload for sign-out.
type SignOutRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// TokenResponse is returned by sign-in.
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}
