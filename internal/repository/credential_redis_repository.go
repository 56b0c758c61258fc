package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/catalog-service/internal/domain"
)

const (
	credentialKeyPrefix     = "credential:"
	credentialIDIndexPrefix = "credential:by_id_token:"
)

// RedisCredentialRepository stores each ledger record as a hash keyed by
// access token, plus a set per ID token listing the access tokens that carry it.
type RedisCredentialRepository struct {
	client redis.Cmdable
}

// NewRedisCredentialRepository returns a Redis-backed implementation.
func NewRedisCredentialRepository(client redis.Cmdable) *RedisCredentialRepository {
	return &RedisCredentialRepository{client: client}
}

func credentialKey(accessToken string) string {
	return credentialKeyPrefix + accessToken
}

func credentialIDIndexKey(idToken string) string {
	return credentialIDIndexPrefix + idToken
}

func (r *RedisCredentialRepository) Put(ctx context.Context, record *domain.CredentialRecord) error {
	key := credentialKey(record.AccessToken)

	prevIDToken, err := r.client.HGet(ctx, key, "id_token").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	revokedAt := ""
	if record.RevokedAt != nil {
		revokedAt = record.RevokedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prevIDToken != "" && prevIDToken != record.IDToken {
			pipe.SRem(ctx, credentialIDIndexKey(prevIDToken), record.AccessToken)
		}
		pipe.HSet(ctx, key, map[string]any{
			"id_token":   record.IDToken,
			"revoked":    boolField(record.Revoked),
			"issued_at":  record.IssuedAt.UTC().Format(time.RFC3339Nano),
			"revoked_at": revokedAt,
		})
		pipe.SAdd(ctx, credentialIDIndexKey(record.IDToken), record.AccessToken)
		return nil
	})
	return err
}

func (r *RedisCredentialRepository) Get(ctx context.Context, accessToken string) (*domain.CredentialRecord, error) {
	fields, err := r.client.HGetAll(ctx, credentialKey(accessToken)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return decodeCredential(accessToken, fields)
}

// markRevokedScript updates an existing hash and never creates one.
var markRevokedScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "revoked", ARGV[1], "revoked_at", ARGV[2])
return 1
`)

func (r *RedisCredentialRepository) MarkRevoked(ctx context.Context, accessToken string, at time.Time) error {
	updated, err := markRevokedScript.Run(ctx, r.client,
		[]string{credentialKey(accessToken)},
		boolField(true), at.UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisCredentialRepository) QueryByIDToken(ctx context.Context, idToken string) ([]domain.CredentialRecord, error) {
	accessTokens, err := r.client.SMembers(ctx, credentialIDIndexKey(idToken)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]domain.CredentialRecord, 0, len(accessTokens))
	for _, accessToken := range accessTokens {
		record, err := r.Get(ctx, accessToken)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		// the index can briefly point at a record rewritten with another ID token
		if record.IDToken != idToken {
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

func decodeCredential(accessToken string, fields map[string]string) (*domain.CredentialRecord, error) {
	record := &domain.CredentialRecord{
		AccessToken: accessToken,
		IDToken:     fields["id_token"],
		Revoked:     fields["revoked"] == "1",
	}
	if v := fields["issued_at"]; v != "" {
		issuedAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, err
		}
		record.IssuedAt = issuedAt
	}
	if v := fields["revoked_at"]; v != "" {
		revokedAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, err
		}
		record.RevokedAt = &revokedAt
	}
	return record, nil
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
