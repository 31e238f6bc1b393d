package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studykit/studykit/internal/cards"
)

type progressRepo struct {
	db *sql.DB
}

const progressColumns = `learner_id, card_id, mastered, due_at, ease_factor, interval_days, review_count, last_reviewed_at`

func (r *progressRepo) Get(ctx context.Context, learnerID, cardID string) (*cards.Progress, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+progressColumns+`
		FROM progress WHERE learner_id = ? AND card_id = ?
	`, learnerID, cardID)

	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress %s/%s: %w", learnerID, cardID, err)
	}
	return p, nil
}

func (r *progressRepo) ListByDocument(ctx context.Context, learnerID, documentID string) ([]cards.Progress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.learner_id, p.card_id, p.mastered, p.due_at, p.ease_factor,
		       p.interval_days, p.review_count, p.last_reviewed_at
		FROM progress p
		JOIN cards c ON c.id = p.card_id
		WHERE p.learner_id = ? AND c.document_id = ?
	`, learnerID, documentID)
	if err != nil {
		return nil, fmt.Errorf("list progress for document %s: %w", documentID, err)
	}
	defer rows.Close()

	out := []cards.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *progressRepo) Upsert(ctx context.Context, p cards.Progress) error {
	return upsertProgress(ctx, r.db, p)
}

// upsertProgress is shared with the transactional review write path. The
// single INSERT OR CONFLICT statement keeps concurrent reviews of the same
// (learner, card) from racing a read-then-write.
func upsertProgress(ctx context.Context, ex executor, p cards.Progress) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO progress (`+progressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, card_id) DO UPDATE SET
			mastered = excluded.mastered,
			due_at = excluded.due_at,
			ease_factor = excluded.ease_factor,
			interval_days = excluded.interval_days,
			review_count = excluded.review_count,
			last_reviewed_at = excluded.last_reviewed_at
	`, p.LearnerID, p.CardID, p.Mastered, p.DueAt, p.EaseFactor, p.IntervalDays, p.ReviewCount, p.LastReviewedAt)
	if err != nil {
		return fmt.Errorf("upsert progress %s/%s: %w", p.LearnerID, p.CardID, err)
	}
	return nil
}

// executor abstracts *sql.DB and *sql.Tx for statements shared with the
// transactional write path.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*cards.Progress, error) {
	var p cards.Progress
	err := row.Scan(&p.LearnerID, &p.CardID, &p.Mastered, &p.DueAt,
		&p.EaseFactor, &p.IntervalDays, &p.ReviewCount, &p.LastReviewedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
