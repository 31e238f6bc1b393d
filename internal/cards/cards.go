// Package cards defines the flashcard domain types shared by the scheduler,
// analytics, and storage layers.
package cards

import "time"

// Card is a single immutable question/answer pair. Cards are created when
// content is generated for a document and are only removed with it.
type Card struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Hint       string `json:"hint,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Position   int    `json:"position"`
}

// Progress is the per-learner scheduling state for one card.
// EaseFactor stays within [MinEase, MaxEase] and IntervalDays is at least 1;
// DueAt is always LastReviewedAt plus IntervalDays.
type Progress struct {
	LearnerID      string    `json:"learner_id"`
	CardID         string    `json:"card_id"`
	Mastered       bool      `json:"mastered"`
	DueAt          time.Time `json:"due_at"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	ReviewCount    int       `json:"review_count"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
}

// Review is one append-only log entry for a single answer.
type Review struct {
	ID             string    `json:"id"`
	LearnerID      string    `json:"learner_id"`
	CardID         string    `json:"card_id"`
	Correct        bool      `json:"correct"`
	Confidence     int       `json:"confidence"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}

// Session accumulates coarse time tracking for reviews landing in the same
// clock hour for one learner and document. It never feeds scheduling.
type Session struct {
	ID          string    `json:"id"`
	LearnerID   string    `json:"learner_id"`
	DocumentID  string    `json:"document_id"`
	StartedAt   time.Time `json:"started_at"`
	ReviewCount int       `json:"review_count"`
	CorrectCnt  int       `json:"correct_count"`
	DurationMs  int64     `json:"duration_ms"`
}

// DefaultTopic is used when a card carries no topic tag.
const DefaultTopic = "General"

// TopicOf returns the card's topic, falling back to DefaultTopic.
func (c Card) TopicOf() string {
	if c.Topic == "" {
		return DefaultTopic
	}
	return c.Topic
}
