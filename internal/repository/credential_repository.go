package repository

import (
	"context"
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// CredentialRepository persists revocation ledger records in Postgres.
// access_token is the primary key; id_token carries a secondary index.
type CredentialRepository struct {
	db DBTX
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(db DBTX) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Put upserts the record; the last write for an access token wins.
func (r *CredentialRepository) Put(ctx context.Context, record *domain.CredentialRecord) error {
	const query = `
        INSERT INTO credentials (access_token, id_token, revoked, issued_at, revoked_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (access_token) DO UPDATE
        SET id_token=EXCLUDED.id_token, revoked=EXCLUDED.revoked,
            issued_at=EXCLUDED.issued_at, revoked_at=EXCLUDED.revoked_at`

	_, err := r.db.Exec(ctx, query,
		record.AccessToken,
		record.IDToken,
		record.Revoked,
		record.IssuedAt,
		record.RevokedAt,
	)
	return err
}

func (r *CredentialRepository) Get(ctx context.Context, accessToken string) (*domain.CredentialRecord, error) {
	const query = `
        SELECT access_token, id_token, revoked, issued_at, revoked_at
        FROM credentials WHERE access_token=$1`

	var record domain.CredentialRecord
	if err := r.db.QueryRow(ctx, query, accessToken).Scan(
		&record.AccessToken,
		&record.IDToken,
		&record.Revoked,
		&record.IssuedAt,
		&record.RevokedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *CredentialRepository) MarkRevoked(ctx context.Context, accessToken string, at time.Time) error {
	const query = `
        UPDATE credentials SET revoked=TRUE, revoked_at=$1
        WHERE access_token=$2`

	cmd, err := r.db.Exec(ctx, query, at, accessToken)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) QueryByIDToken(ctx context.Context, idToken string) ([]domain.CredentialRecord, error) {
	const query = `
        SELECT access_token, id_token, revoked, issued_at, revoked_at
        FROM credentials WHERE id_token=$1`

	rows, err := r.db.Query(ctx, query, idToken)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CredentialRecord
	for rows.Next() {
		var record domain.CredentialRecord
		if err := rows.Scan(
			&record.AccessToken,
			&record.IDToken,
			&record.Revoked,
			&record.IssuedAt,
			&record.RevokedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
