package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studykit/studykit/internal/cards"
)

type cardRepo struct {
	db *sql.DB
}

func (r *cardRepo) Insert(ctx context.Context, c cards.Card) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (id, document_id, question, answer, hint, topic, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.DocumentID, c.Question, c.Answer, c.Hint, c.Topic, c.Position)
	if err != nil {
		return fmt.Errorf("insert card %s: %w", c.ID, err)
	}
	return nil
}

func (r *cardRepo) ListByDocument(ctx context.Context, documentID string) ([]cards.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, document_id, question, answer, hint, topic, position
		FROM cards WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list cards for document %s: %w", documentID, err)
	}
	defer rows.Close()

	out := []cards.Card{}
	for rows.Next() {
		var c cards.Card
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Question, &c.Answer, &c.Hint, &c.Topic, &c.Position); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *cardRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("delete cards for document %s: %w", documentID, err)
	}
	return nil
}
