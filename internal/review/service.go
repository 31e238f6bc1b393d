// Package review is the write path and orchestration layer: it ties input
// validation, the interval model, the scheduler, and the store together
// behind one service.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/scheduler"
	"github.com/studykit/studykit/internal/srs"
	"github.com/studykit/studykit/internal/store"
)

// masteryIntervalDays is the interval threshold past which a confident
// correct answer retires a card from active scheduling.
const masteryIntervalDays = 21

// masteryConfidence is the minimum self-reported confidence for promotion.
const masteryConfidence = 4

// reviewLookbackDays bounds how much review history the scheduler loads.
const reviewLookbackDays = 30

// Service coordinates review recording and session building for one store.
// Every method takes an explicit learner id; there is no ambient identity.
type Service struct {
	cards    store.CardRepo
	progress store.ProgressRepo
	reviews  store.ReviewRepo
	writer   store.ReviewWriter
	log      *slog.Logger
}

// NewService builds a Service on top of an open store.
func NewService(st *store.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cards:    st.Cards(),
		progress: st.Progress(),
		reviews:  st.Reviews(),
		writer:   st,
		log:      log,
	}
}

// RecordReview validates and persists one review, returning the updated
// progress record. A returned error means nothing was recorded and the
// caller must retry.
func (s *Service) RecordReview(ctx context.Context, learnerID string, in cards.ReviewInput, now time.Time) (*cards.Progress, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("learner id is required")
	}
	if err := cards.ValidateReview(in); err != nil {
		return nil, err
	}

	prev, err := s.progress.Get(ctx, learnerID, in.CardID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	// First review of a card starts from the initial ease and a 1-day
	// interval.
	ease := srs.InitialEase
	interval := 1
	reviewCount := 0
	mastered := false
	if prev != nil {
		ease = prev.EaseFactor
		interval = prev.IntervalDays
		reviewCount = prev.ReviewCount
		mastered = prev.Mastered
	}

	sched := srs.NextSchedule(in.Correct, in.Confidence, ease, interval, now)

	// A lapse always demotes; a confident answer at a long interval
	// promotes.
	if !in.Correct {
		mastered = false
	} else if in.Confidence >= masteryConfidence && sched.IntervalDays >= masteryIntervalDays {
		mastered = true
	}

	p := cards.Progress{
		LearnerID:      learnerID,
		CardID:         in.CardID,
		Mastered:       mastered,
		DueAt:          sched.DueAt,
		EaseFactor:     sched.EaseFactor,
		IntervalDays:   sched.IntervalDays,
		ReviewCount:    reviewCount + 1,
		LastReviewedAt: now,
	}
	rev := cards.Review{
		ID:             uuid.NewString(),
		LearnerID:      learnerID,
		CardID:         in.CardID,
		Correct:        in.Correct,
		Confidence:     in.Confidence,
		ResponseTimeMs: in.ResponseTimeMs,
		ReviewedAt:     now,
	}

	if err := s.writer.RecordReview(ctx, in.DocumentID, rev, p); err != nil {
		return nil, fmt.Errorf("record review: %w", err)
	}

	s.log.Debug("review recorded",
		"learner", learnerID,
		"card", in.CardID,
		"correct", in.Correct,
		"next_due", sched.DueAt,
		"interval_days", sched.IntervalDays,
	)
	return &p, nil
}

// BuildSession returns a prioritized study queue for the learner and
// document. Store read failures degrade to an empty queue; a learner is
// never shown an error for a read-only surface.
func (s *Service) BuildSession(ctx context.Context, learnerID, documentID string, maxSize int, now time.Time) []scheduler.ScoredCard {
	candidates, progress, reviews, ok := s.loadSchedulingState(ctx, learnerID, documentID, now)
	if !ok {
		return []scheduler.ScoredCard{}
	}
	return scheduler.SelectSession(candidates, progress, reviews, maxSize, now)
}

// Recommend summarizes the learner's workload for the document.
func (s *Service) Recommend(ctx context.Context, learnerID, documentID string, now time.Time) scheduler.Recommendation {
	candidates, progress, reviews, ok := s.loadSchedulingState(ctx, learnerID, documentID, now)
	if !ok {
		return scheduler.Recommendation{}
	}
	return scheduler.Recommend(candidates, progress, reviews, now)
}

func (s *Service) loadSchedulingState(ctx context.Context, learnerID, documentID string, now time.Time) ([]cards.Card, []cards.Progress, []cards.Review, bool) {
	candidates, err := s.cards.ListByDocument(ctx, documentID)
	if err != nil {
		s.log.Warn("loading cards failed", "document", documentID, "error", err)
		return nil, nil, nil, false
	}

	progress, err := s.progress.ListByDocument(ctx, learnerID, documentID)
	if err != nil {
		s.log.Warn("loading progress failed", "document", documentID, "error", err)
		return nil, nil, nil, false
	}

	since := now.AddDate(0, 0, -reviewLookbackDays)
	reviews, err := s.reviews.ByDocumentSince(ctx, learnerID, documentID, since)
	if err != nil {
		s.log.Warn("loading reviews failed", "document", documentID, "error", err)
		return nil, nil, nil, false
	}

	return candidates, progress, reviews, true
}
