package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/store"
)

type fakeRepos struct {
	reviews    []cards.Review
	reviewsErr error
}

func (f *fakeRepos) Insert(ctx context.Context, r cards.Review) error { return nil }
func (f *fakeRepos) RecentByCard(ctx context.Context, learnerID, cardID string, limit int) ([]cards.Review, error) {
	return f.reviews, nil
}
func (f *fakeRepos) ByLearnerSince(ctx context.Context, learnerID string, since time.Time) ([]cards.Review, error) {
	return f.reviews, f.reviewsErr
}
func (f *fakeRepos) ByDocumentSince(ctx context.Context, learnerID, documentID string, since time.Time) ([]cards.Review, error) {
	return f.reviews, f.reviewsErr
}

type fakeProgress struct{ progress []cards.Progress }

func (f *fakeProgress) Get(ctx context.Context, learnerID, cardID string) (*cards.Progress, error) {
	return nil, nil
}
func (f *fakeProgress) ListByDocument(ctx context.Context, learnerID, documentID string) ([]cards.Progress, error) {
	return f.progress, nil
}
func (f *fakeProgress) Upsert(ctx context.Context, p cards.Progress) error { return nil }

type fakeSessions struct{ sessions []cards.Session }

func (f *fakeSessions) Since(ctx context.Context, learnerID string, since time.Time) ([]cards.Session, error) {
	return f.sessions, nil
}

type fakeCards struct{ cardList []cards.Card }

func (f *fakeCards) Insert(ctx context.Context, c cards.Card) error { return nil }
func (f *fakeCards) ListByDocument(ctx context.Context, documentID string) ([]cards.Card, error) {
	return f.cardList, nil
}
func (f *fakeCards) DeleteByDocument(ctx context.Context, documentID string) error { return nil }

var _ store.ReviewRepo = (*fakeRepos)(nil)
var _ store.CardRepo = (*fakeCards)(nil)
var _ store.ProgressRepo = (*fakeProgress)(nil)
var _ store.SessionRepo = (*fakeSessions)(nil)

func TestAnalyze_HappyPath(t *testing.T) {
	reviews := []cards.Review{
		{CardID: "c1", Correct: true, Confidence: 4, ReviewedAt: now.Add(-time.Hour)},
		{CardID: "c1", Correct: true, Confidence: 4, ReviewedAt: now.AddDate(0, 0, -1)},
	}
	a := NewAnalyzer(
		&fakeRepos{reviews: reviews},
		&fakeCards{cardList: []cards.Card{{ID: "c1", Topic: "Math"}}},
		&fakeProgress{progress: []cards.Progress{{CardID: "c1", Mastered: true}}},
		&fakeSessions{sessions: []cards.Session{{DurationMs: 1000}}},
		nil,
	)

	got := a.Analyze(context.Background(), "l1", "doc1", now)
	if got.TotalReviews != 2 || got.StreakDays != 2 || got.MasteredCount != 1 {
		t.Errorf("Analyze() = %+v, want 2 reviews, streak 2, 1 mastered", got)
	}
}

func TestAnalyze_DegradesToZeroOnStoreFailure(t *testing.T) {
	a := NewAnalyzer(
		&fakeRepos{reviewsErr: errors.New("db gone")},
		&fakeCards{},
		&fakeProgress{},
		&fakeSessions{},
		nil,
	)
	got := a.Analyze(context.Background(), "l1", "doc1", now)
	if got.TotalReviews != 0 || got.StreakDays != 0 || got.Accuracy != 0 ||
		got.MasteredCount != 0 || len(got.Topics) != 0 {
		t.Errorf("Analyze() = %+v, want zero dashboard on read failure", got)
	}
}
