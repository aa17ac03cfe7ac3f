package postgres

import (
	"context"
	"fmt"

	"certpdf/internal/tokens"
)

const tokensSchema = `CREATE TABLE IF NOT EXISTS tokens (
	token TEXT PRIMARY KEY,
	rate_limit INTEGER NOT NULL DEFAULT 60,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	comment TEXT
);
CREATE INDEX IF NOT EXISTS idx_tokens_created_at ON tokens (created_at);`

// TokenRepository reads API tokens from the tokens table.
type TokenRepository struct {
	DB  *DB
	DSN string
}

var _ tokens.Repository = (*TokenRepository)(nil)

func NewTokenRepository(db *DB, dsn string) *TokenRepository {
	return &TokenRepository{DB: db, DSN: dsn}
}

func (r *TokenRepository) LoadTokens(ctx context.Context) (map[string]tokens.Entry, error) {
	db, err := r.DB.Get(r.DSN)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, tokensSchema); err != nil {
		return nil, fmt.Errorf("ensure tokens schema: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT token, rate_limit FROM tokens`)
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()

	out := make(map[string]tokens.Entry)
	for rows.Next() {
		var token string
		var limit int
		if err := rows.Scan(&token, &limit); err != nil {
			return nil, err
		}
		out[token] = tokens.Entry{RateLimit: limit}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
