package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/cards"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Since(ctx context.Context, learnerID string, since time.Time) ([]cards.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, learner_id, document_id, started_at, review_count, correct_count, duration_ms
		FROM study_sessions
		WHERE learner_id = ? AND started_at >= ?
		ORDER BY started_at DESC
	`, learnerID, since)
	if err != nil {
		return nil, fmt.Errorf("sessions for learner %s: %w", learnerID, err)
	}
	defer rows.Close()

	out := []cards.Session{}
	for rows.Next() {
		var s cards.Session
		if err := rows.Scan(&s.ID, &s.LearnerID, &s.DocumentID, &s.StartedAt,
			&s.ReviewCount, &s.CorrectCnt, &s.DurationMs); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// touchSession folds one review into the learner's session row for the
// current clock hour, creating it on first activity. Runs inside the review
// transaction.
func touchSession(ctx context.Context, ex executor, learnerID, documentID string, correct bool, durationMs int64, at time.Time) error {
	bucket := at.UTC().Format("2006-01-02T15")
	correctInc := 0
	if correct {
		correctInc = 1
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO study_sessions (id, learner_id, document_id, hour_bucket, started_at, review_count, correct_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (learner_id, document_id, hour_bucket) DO UPDATE SET
			review_count = review_count + 1,
			correct_count = correct_count + excluded.correct_count,
			duration_ms = duration_ms + excluded.duration_ms
	`, uuid.NewString(), learnerID, documentID, bucket, at, correctInc, durationMs)
	if err != nil {
		return fmt.Errorf("touch session %s/%s: %w", learnerID, documentID, err)
	}
	return nil
}
