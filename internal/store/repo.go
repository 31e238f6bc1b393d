package store

import (
	"context"
	"time"

	"github.com/studykit/studykit/internal/cards"
)

// CardRepo provides access to immutable card content.
type CardRepo interface {
	// Insert stores one generated card.
	Insert(ctx context.Context, c cards.Card) error

	// ListByDocument returns a document's cards in position order.
	// Zero rows yields an empty slice, never an error.
	ListByDocument(ctx context.Context, documentID string) ([]cards.Card, error)

	// DeleteByDocument removes a document's cards. Cards are otherwise
	// never mutated or deleted.
	DeleteByDocument(ctx context.Context, documentID string) error
}

// ProgressRepo manages per-learner scheduling state.
type ProgressRepo interface {
	// Get returns the progress record, or nil when the card has never
	// been reviewed by this learner.
	Get(ctx context.Context, learnerID, cardID string) (*cards.Progress, error)

	// ListByDocument returns all of a learner's progress records for a
	// document's cards.
	ListByDocument(ctx context.Context, learnerID, documentID string) ([]cards.Progress, error)

	// Upsert inserts or updates the record in a single atomic statement,
	// so concurrent reviews of the same card cannot interleave a
	// read-then-write.
	Upsert(ctx context.Context, p cards.Progress) error
}

// ReviewRepo is the append-only review event log.
type ReviewRepo interface {
	Insert(ctx context.Context, r cards.Review) error

	// RecentByCard returns up to limit events for one card, newest first.
	RecentByCard(ctx context.Context, learnerID, cardID string, limit int) ([]cards.Review, error)

	// ByLearnerSince returns the learner's events at or after since,
	// newest first.
	ByLearnerSince(ctx context.Context, learnerID string, since time.Time) ([]cards.Review, error)

	// ByDocumentSince restricts ByLearnerSince to one document's cards.
	ByDocumentSince(ctx context.Context, learnerID, documentID string, since time.Time) ([]cards.Review, error)
}

// SessionRepo accumulates coarse study-time aggregates. Reviews landing in
// the same clock hour for the same learner and document share one row.
type SessionRepo interface {
	Since(ctx context.Context, learnerID string, since time.Time) ([]cards.Session, error)
}

// CacheEntry is one stored generation response, keyed by content hash.
type CacheEntry struct {
	Key          string
	Response     string
	Model        string
	InputTokens  int
	OutputTokens int
	CreatedAt    time.Time
}

// CacheRepo persists content-addressed generation responses. Entries are
// global across learners: the key hashes the full generation input, so equal
// keys are interchangeable regardless of who asked.
type CacheRepo interface {
	// Get returns the entry, or nil when absent. TTL policy belongs to
	// the caller; Get returns whatever is stored.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Put stores an entry, replacing any previous value for the key.
	// Last-write-wins is safe because equal keys carry equivalent content.
	Put(ctx context.Context, e CacheEntry) error

	// DeleteOlderThan removes entries created before cutoff and reports
	// how many rows went away.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// UsageRecord is one generation call's accounting row.
type UsageRecord struct {
	ID           string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Cached       bool
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// UsageRepo is the best-effort generation usage log. Append failures must
// never fail a caller's primary operation.
type UsageRepo interface {
	Append(ctx context.Context, u UsageRecord) error
}
