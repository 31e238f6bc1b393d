package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type cacheRepo struct {
	db *sql.DB
}

func (r *cacheRepo) Get(ctx context.Context, key string) (*CacheEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, response, model, input_tokens, output_tokens, created_at
		FROM gen_cache WHERE key = ?
	`, key)

	var e CacheEntry
	err := row.Scan(&e.Key, &e.Response, &e.Model, &e.InputTokens, &e.OutputTokens, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cache entry: %w", err)
	}
	return &e, nil
}

func (r *cacheRepo) Put(ctx context.Context, e CacheEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gen_cache (key, response, model, input_tokens, output_tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			response = excluded.response,
			model = excluded.model,
			input_tokens = excluded.input_tokens,
			output_tokens = excluded.output_tokens,
			created_at = excluded.created_at
	`, e.Key, e.Response, e.Model, e.InputTokens, e.OutputTokens, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

func (r *cacheRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gen_cache WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale cache entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
