package store

import (
	"context"
	"fmt"

	"github.com/studykit/studykit/internal/cards"
)

// ReviewWriter is the all-or-nothing write path for one review: the event
// insert, the progress upsert, and the session aggregate land together or
// not at all. A failure here means the review was NOT recorded and the
// caller must retry.
type ReviewWriter interface {
	RecordReview(ctx context.Context, documentID string, rev cards.Review, p cards.Progress) error
}

// RecordReview persists one review atomically.
func (s *Store) RecordReview(ctx context.Context, documentID string, rev cards.Review, p cards.Progress) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertReview(ctx, tx, rev); err != nil {
		return err
	}
	if err := upsertProgress(ctx, tx, p); err != nil {
		return err
	}
	if err := touchSession(ctx, tx, rev.LearnerID, documentID, rev.Correct, int64(rev.ResponseTimeMs), rev.ReviewedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review tx: %w", err)
	}
	return nil
}
