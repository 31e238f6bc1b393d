package scheduler

import (
	"testing"
	"time"

	"github.com/studykit/studykit/internal/cards"
)

func candidateSet(n int) []cards.Card {
	out := make([]cards.Card, n)
	for i := range out {
		out[i] = cards.Card{ID: string(rune('a' + i)), Position: i}
	}
	return out
}

// Overdue unmastered beats new, which beats mastered-not-overdue.
func TestSelectSession_OverdueUnmasteredDominates(t *testing.T) {
	cs := []cards.Card{
		{ID: "A"},
		{ID: "B"},
		{ID: "C"},
	}
	progress := []cards.Progress{
		{CardID: "B", Mastered: false, DueAt: now.AddDate(0, 0, -3), EaseFactor: 2.5, IntervalDays: 6},
		{CardID: "C", Mastered: true, DueAt: now, EaseFactor: 2.5, IntervalDays: 30},
	}

	queue := SelectSession(cs, progress, nil, 20, now)
	if len(queue) != 3 {
		t.Fatalf("len = %d, want 3", len(queue))
	}
	wantOrder := []string{"B", "A", "C"}
	for i, want := range wantOrder {
		if queue[i].Card.ID != want {
			t.Errorf("queue[%d] = %s, want %s", i, queue[i].Card.ID, want)
		}
	}
}

func TestSelectSession_Deterministic(t *testing.T) {
	cs := candidateSet(10)
	first := SelectSession(cs, nil, nil, 20, now)
	for i := 0; i < 5; i++ {
		again := SelectSession(cs, nil, nil, 20, now)
		for j := range first {
			if first[j].Card.ID != again[j].Card.ID {
				t.Fatalf("run %d: order diverged at %d", i, j)
			}
		}
	}
}

func TestSelectSession_StableTies(t *testing.T) {
	// All new cards score 100; original order must survive.
	cs := candidateSet(6)
	queue := SelectSession(cs, nil, nil, 20, now)
	for i, sc := range queue {
		if sc.Card.Position != i {
			t.Errorf("queue[%d].Position = %d, want %d", i, sc.Card.Position, i)
		}
	}
}

func TestSelectSession_TruncatesToMaxSize(t *testing.T) {
	cs := candidateSet(25)
	queue := SelectSession(cs, nil, nil, 10, now)
	if len(queue) != 10 {
		t.Errorf("len = %d, want 10", len(queue))
	}

	queue = SelectSession(cs, nil, nil, 0, now)
	if len(queue) != DefaultSessionSize {
		t.Errorf("len = %d, want default %d", len(queue), DefaultSessionSize)
	}

	queue = SelectSession(candidateSet(3), nil, nil, 10, now)
	if len(queue) != 3 {
		t.Errorf("len = %d, want 3", len(queue))
	}
}

func TestSelectSession_NoDuplicates(t *testing.T) {
	cs := candidateSet(15)
	queue := SelectSession(cs, nil, nil, 20, now)
	seen := make(map[string]bool)
	for _, sc := range queue {
		if seen[sc.Card.ID] {
			t.Errorf("card %s appears twice", sc.Card.ID)
		}
		seen[sc.Card.ID] = true
	}
}

func TestTopicRates_IgnoresForeignCards(t *testing.T) {
	cs := []cards.Card{{ID: "c1", Topic: "Math"}}
	reviews := []cards.Review{
		{CardID: "c1", Correct: true, ReviewedAt: now},
		{CardID: "other", Correct: false, ReviewedAt: now},
	}
	rates := TopicRates(cs, reviews)
	if rates["Math"].Total != 1 || rates["Math"].Correct != 1 {
		t.Errorf("rates = %+v, want 1/1 for Math", rates["Math"])
	}
}

func TestRecommend_Counts(t *testing.T) {
	cs := []cards.Card{
		{ID: "new1"}, {ID: "new2"},
		{ID: "due1"}, {ID: "fut1"}, {ID: "mast1"},
	}
	progress := []cards.Progress{
		{CardID: "due1", DueAt: now.Add(-time.Hour), EaseFactor: 2.0, IntervalDays: 3},
		{CardID: "fut1", DueAt: now.AddDate(0, 0, 4), EaseFactor: 2.0, IntervalDays: 6},
		{CardID: "mast1", Mastered: true, DueAt: now.Add(-time.Hour), EaseFactor: 2.5, IntervalDays: 30},
	}

	rec := Recommend(cs, progress, nil, now)
	if rec.NewCount != 2 {
		t.Errorf("NewCount = %d, want 2", rec.NewCount)
	}
	if rec.DueCount != 1 {
		t.Errorf("DueCount = %d, want 1", rec.DueCount)
	}
	if rec.StrugglingCount != 0 {
		t.Errorf("StrugglingCount = %d, want 0", rec.StrugglingCount)
	}
	// 1 due + min(2,5) new = 3, clamped up to 5.
	if rec.RecommendedSessionSize != 5 {
		t.Errorf("RecommendedSessionSize = %d, want 5", rec.RecommendedSessionSize)
	}
}

func TestRecommend_Struggling(t *testing.T) {
	cs := []cards.Card{{ID: "c1"}}
	progress := []cards.Progress{
		{CardID: "c1", DueAt: now.AddDate(0, 0, 1), EaseFactor: 2.0, IntervalDays: 3, ReviewCount: 4},
	}
	reviews := []cards.Review{
		{CardID: "c1", Correct: false, Confidence: 2, ReviewedAt: now.Add(-1 * time.Hour)},
		{CardID: "c1", Correct: false, Confidence: 2, ReviewedAt: now.Add(-2 * time.Hour)},
		{CardID: "c1", Correct: true, Confidence: 3, ReviewedAt: now.Add(-3 * time.Hour)},
		{CardID: "c1", Correct: true, Confidence: 3, ReviewedAt: now.Add(-4 * time.Hour)},
	}
	rec := Recommend(cs, progress, reviews, now)
	if rec.StrugglingCount != 1 {
		t.Errorf("StrugglingCount = %d, want 1", rec.StrugglingCount)
	}
}

func TestRecommend_SessionSizeClamps(t *testing.T) {
	// 30 due cards push the size to the 20 cap.
	var cs []cards.Card
	var progress []cards.Progress
	for i := 0; i < 30; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		cs = append(cs, cards.Card{ID: id})
		progress = append(progress, cards.Progress{
			CardID: id, DueAt: now.Add(-time.Hour), EaseFactor: 2.0, IntervalDays: 3,
		})
	}
	rec := Recommend(cs, progress, nil, now)
	if rec.RecommendedSessionSize != 20 {
		t.Errorf("RecommendedSessionSize = %d, want 20", rec.RecommendedSessionSize)
	}
}

func TestRecommend_StrainedCap(t *testing.T) {
	// 12 struggling cards cap the session at 15 even with plenty due.
	var cs []cards.Card
	var progress []cards.Progress
	var reviews []cards.Review
	for i := 0; i < 12; i++ {
		id := string(rune('a'+i)) + "x"
		cs = append(cs, cards.Card{ID: id})
		progress = append(progress, cards.Progress{
			CardID: id, DueAt: now.Add(-time.Hour), EaseFactor: 1.5, IntervalDays: 2,
		})
		for j := 0; j < 3; j++ {
			reviews = append(reviews, cards.Review{
				CardID: id, Correct: false, Confidence: 2,
				ReviewedAt: now.Add(-time.Duration(j+1) * time.Hour),
			})
		}
	}
	for i := 0; i < 10; i++ {
		id := string(rune('a'+i)) + "y"
		cs = append(cs, cards.Card{ID: id})
		progress = append(progress, cards.Progress{
			CardID: id, DueAt: now.Add(-time.Hour), EaseFactor: 2.0, IntervalDays: 3,
		})
	}

	rec := Recommend(cs, progress, reviews, now)
	if rec.StrugglingCount != 12 {
		t.Fatalf("StrugglingCount = %d, want 12", rec.StrugglingCount)
	}
	if rec.RecommendedSessionSize != 15 {
		t.Errorf("RecommendedSessionSize = %d, want 15", rec.RecommendedSessionSize)
	}
}

func TestRecommend_FocusTopics(t *testing.T) {
	cs := []cards.Card{
		{ID: "m1", Topic: "Math"},
		{ID: "h1", Topic: "History"},
		{ID: "b1", Topic: "Biology"},
		{ID: "p1", Topic: "Physics"},
	}
	mk := func(cardID string, correct int, total int) []cards.Review {
		var out []cards.Review
		for i := 0; i < total; i++ {
			out = append(out, cards.Review{
				CardID:     cardID,
				Correct:    i < correct,
				ReviewedAt: now.Add(-time.Duration(i+1) * time.Hour),
			})
		}
		return out
	}
	var reviews []cards.Review
	reviews = append(reviews, mk("m1", 1, 4)...) // 0.25
	reviews = append(reviews, mk("h1", 3, 4)...) // 0.75
	reviews = append(reviews, mk("b1", 2, 4)...) // 0.50
	reviews = append(reviews, mk("p1", 1, 2)...) // only 2 reviews, excluded

	rec := Recommend(cs, nil, reviews, now)
	want := []string{"Math", "Biology", "History"}
	if len(rec.FocusTopics) != 3 {
		t.Fatalf("FocusTopics = %v, want 3 entries", rec.FocusTopics)
	}
	for i, w := range want {
		if rec.FocusTopics[i] != w {
			t.Errorf("FocusTopics[%d] = %s, want %s", i, rec.FocusTopics[i], w)
		}
	}
}
