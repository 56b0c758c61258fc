package repository

import (
	"context"
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// UserRepository defines persistence access for identity accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	MarkConfirmed(ctx context.Context, id string) error
	SetTokensValidAfter(ctx context.Context, id string, at time.Time) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, status, confirmation_code)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, tokens_valid_after, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		string(user.Status),
		user.ConfirmationCode,
	).Scan(&user.ID, &user.TokensValidAfter, &user.CreatedAt, &user.UpdatedAt)
	return translate(err)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, email, password_hash, status, confirmation_code,
               tokens_valid_after, created_at, updated_at
        FROM users WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, username, email, password_hash, status, confirmation_code,
               tokens_valid_after, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user   domain.User
		status string
	)
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&status,
		&user.ConfirmationCode,
		&user.TokensValidAfter,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	user.Status = domain.UserStatus(status)
	return &user, nil
}

func (r *userRepository) MarkConfirmed(ctx context.Context, id string) error {
	const query = `
        UPDATE users SET status=$1, confirmation_code='', updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, string(domain.UserStatusConfirmed), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetTokensValidAfter(ctx context.Context, id string, at time.Time) error {
	const query = `
        UPDATE users SET tokens_valid_after=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
