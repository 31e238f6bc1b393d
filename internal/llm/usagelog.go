package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/store"
)

// UsageLogGenerator is a decorator that records every generation call
// as a usage record.
type UsageLogGenerator struct {
	inner Generator
	usage store.UsageRepo
}

// WithUsageLog wraps a Generator with usage recording.
func WithUsageLog(g Generator, repo store.UsageRepo) Generator {
	return &UsageLogGenerator{inner: g, usage: repo}
}

func (u *UsageLogGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	result, err := u.inner.Generate(ctx, req)

	rec := store.UsageRecord{
		ID:        uuid.NewString(),
		Model:     u.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		CreatedAt: time.Now().UTC(),
	}

	if result != nil {
		rec.Model = result.Model
		rec.InputTokens = result.Usage.InputTokens
		rec.OutputTokens = result.Usage.OutputTokens
		if cost := LookupCost(result.Model); cost != nil {
			rec.CostUSD = cost.Cost(result.Usage.InputTokens, result.Usage.OutputTokens)
		}
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Record usage but don't fail the request if the write fails.
	if logErr := u.usage.Append(ctx, rec); logErr != nil {
		slog.Warn("failed to record generation usage", "error", logErr)
	}

	return result, err
}

func (u *UsageLogGenerator) ModelID() string {
	return u.inner.ModelID()
}
