package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

var userColumnNames = []string{"id", "username", "email", "password_hash", "status", "confirmation_code", "tokens_valid_after", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("evan", "evan@example.com", "hash", "PENDING", "123456").
		WillReturnRows(pgxmock.NewRows([]string{"id", "tokens_valid_after", "created_at", "updated_at"}).
			AddRow("6a3c3c1e-0000-4000-8000-000000000001", time.Unix(0, 0).UTC(), now, now))

	user := &domain.User{
		Username:         "evan",
		Email:            "evan@example.com",
		PasswordHash:     "hash",
		Status:           domain.UserStatusPending,
		ConfirmationCode: "123456",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, "6a3c3c1e-0000-4000-8000-000000000001", user.ID)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("evan").
		WillReturnRows(pgxmock.NewRows(userColumnNames).
			AddRow("id-1", "evan", "evan@example.com", "hash", "CONFIRMED", "", now, now, now))
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userColumnNames))

	user, err := repo.GetByUsername(context.Background(), "evan")
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusConfirmed, user.Status)
	assert.Equal(t, now, user.TokensValidAfter)

	_, err = repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Updates(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE users SET status").
		WithArgs("CONFIRMED", "id-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE users SET tokens_valid_after").
		WithArgs(at, "id-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkConfirmed(context.Background(), "id-1"))
	assert.ErrorIs(t, repo.SetTokensValidAfter(context.Background(), "id-2", at), ErrNotFound)
}
