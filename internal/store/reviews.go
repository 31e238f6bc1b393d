package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studykit/studykit/internal/cards"
)

type reviewRepo struct {
	db *sql.DB
}

const reviewColumns = `id, learner_id, card_id, correct, confidence, response_time_ms, reviewed_at`

func (r *reviewRepo) Insert(ctx context.Context, rev cards.Review) error {
	return insertReview(ctx, r.db, rev)
}

func insertReview(ctx context.Context, ex executor, rev cards.Review) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rev.ID, rev.LearnerID, rev.CardID, rev.Correct, rev.Confidence, rev.ResponseTimeMs, rev.ReviewedAt)
	if err != nil {
		return fmt.Errorf("insert review %s: %w", rev.ID, err)
	}
	return nil
}

func (r *reviewRepo) RecentByCard(ctx context.Context, learnerID, cardID string, limit int) ([]cards.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE learner_id = ? AND card_id = ?
		ORDER BY reviewed_at DESC
		LIMIT ?
	`, learnerID, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent reviews for card %s: %w", cardID, err)
	}
	return collectReviews(rows)
}

func (r *reviewRepo) ByLearnerSince(ctx context.Context, learnerID string, since time.Time) ([]cards.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE learner_id = ? AND reviewed_at >= ?
		ORDER BY reviewed_at DESC
	`, learnerID, since)
	if err != nil {
		return nil, fmt.Errorf("reviews for learner %s: %w", learnerID, err)
	}
	return collectReviews(rows)
}

func (r *reviewRepo) ByDocumentSince(ctx context.Context, learnerID, documentID string, since time.Time) ([]cards.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.learner_id, r.card_id, r.correct, r.confidence, r.response_time_ms, r.reviewed_at
		FROM reviews r
		JOIN cards c ON c.id = r.card_id
		WHERE r.learner_id = ? AND c.document_id = ? AND r.reviewed_at >= ?
		ORDER BY r.reviewed_at DESC
	`, learnerID, documentID, since)
	if err != nil {
		return nil, fmt.Errorf("reviews for document %s: %w", documentID, err)
	}
	return collectReviews(rows)
}

func collectReviews(rows *sql.Rows) ([]cards.Review, error) {
	defer rows.Close()
	out := []cards.Review{}
	for rows.Next() {
		var rev cards.Review
		if err := rows.Scan(&rev.ID, &rev.LearnerID, &rev.CardID, &rev.Correct,
			&rev.Confidence, &rev.ResponseTimeMs, &rev.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
