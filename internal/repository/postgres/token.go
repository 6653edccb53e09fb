package postgres

import (
	"context"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
)

type tokenRepo struct {
	db DB
}

func newTokenRepo(db DB) Token {
	return &tokenRepo{
		db: db,
	}
}

func (r *tokenRepo) Replace(ctx context.Context, token model.AuthToken) (*model.AuthToken, error) {
	token.ID = uuid.New()
	token.TokenType = model.TokenTypeBearer
	token.Expired = false
	token.Revoked = false
	token.CreatedAt = time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Revocation and insert share the commit so a concurrent issuance
	// cannot leave two valid tokens or revive an old one.
	if _, err := tx.Exec(
		ctx,
		"UPDATE auth_tokens SET revoked = true, expired = true WHERE user_id = $1 AND revoked = false AND expired = false",
		token.UserID,
	); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		"INSERT INTO auth_tokens(id, user_id, token, token_type, expired, revoked, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		token.ID,
		token.UserID,
		token.Token,
		token.TokenType,
		token.Expired,
		token.Revoked,
		token.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepo) FindByToken(ctx context.Context, token string) (*model.AuthToken, error) {
	var t model.AuthToken
	if err := r.db.QueryRow(ctx, `
	SELECT t.id, t.user_id, t.token, t.token_type, t.expired, t.revoked, t.created_at
	FROM auth_tokens t
	WHERE t.token = $1
	ORDER BY t.created_at DESC
	LIMIT 1
	`, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.TokenType,
		&t.Expired,
		&t.Revoked,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &t, nil
}
