package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type usageRepo struct {
	db *sql.DB
}

func (r *usageRepo) Append(ctx context.Context, u UsageRecord) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gen_usage (id, model, purpose, input_tokens, output_tokens, latency_ms, cost_usd, cached, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Model, u.Purpose, u.InputTokens, u.OutputTokens, u.LatencyMs, u.CostUSD, u.Cached, u.Success, u.ErrorMessage, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("append usage record: %w", err)
	}
	return nil
}
