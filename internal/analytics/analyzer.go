package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/studykit/studykit/internal/store"
)

// Window sizes for the analysis. Trends need two weeks of reviews; study
// time looks at the last week of sessions.
const (
	reviewWindowDays  = 14
	sessionWindowDays = 7
)

// Analyzer loads a learner's history and computes the dashboard.
type Analyzer struct {
	reviews  store.ReviewRepo
	cards    store.CardRepo
	progress store.ProgressRepo
	sessions store.SessionRepo
	log      *slog.Logger
}

// NewAnalyzer wires an Analyzer against the store repositories.
func NewAnalyzer(reviews store.ReviewRepo, cardRepo store.CardRepo, progress store.ProgressRepo, sessions store.SessionRepo, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		reviews:  reviews,
		cards:    cardRepo,
		progress: progress,
		sessions: sessions,
		log:      log,
	}
}

// Analyze builds the learner's dashboard for one document. Analytics are
// advisory: any read failure is logged and degrades to the zero-valued
// dashboard instead of surfacing an error.
func (a *Analyzer) Analyze(ctx context.Context, learnerID, documentID string, now time.Time) LearningAnalytics {
	reviews, err := a.reviews.ByDocumentSince(ctx, learnerID, documentID, now.AddDate(0, 0, -reviewWindowDays))
	if err != nil {
		a.log.Warn("analytics degraded: loading reviews failed",
			"learner", learnerID, "document", documentID, "err", err)
		return LearningAnalytics{}
	}

	cardList, err := a.cards.ListByDocument(ctx, documentID)
	if err != nil {
		a.log.Warn("analytics degraded: loading cards failed",
			"document", documentID, "err", err)
		return LearningAnalytics{}
	}

	progress, err := a.progress.ListByDocument(ctx, learnerID, documentID)
	if err != nil {
		a.log.Warn("analytics degraded: loading progress failed",
			"learner", learnerID, "document", documentID, "err", err)
		return LearningAnalytics{}
	}

	sessions, err := a.sessions.Since(ctx, learnerID, now.AddDate(0, 0, -sessionWindowDays))
	if err != nil {
		a.log.Warn("analytics degraded: loading sessions failed",
			"learner", learnerID, "err", err)
		return LearningAnalytics{}
	}

	return Compute(reviews, cardList, progress, sessions, now)
}
