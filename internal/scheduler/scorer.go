// Package scheduler ranks candidate cards into a study queue. Scoring and
// selection are pure; callers supply all data and an explicit clock.
package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/srs"
)

// RecentWindow is how many of a card's most recent reviews feed the
// short-term scoring adjustments.
const RecentWindow = 5

// damperAge is the anti-repetition horizon: a card answered well within this
// window gets pushed down the queue.
const damperAge = 4 * time.Hour

// TopicRate aggregates recent outcomes for one topic across all cards.
type TopicRate struct {
	Correct int
	Total   int
}

// Rate returns the topic success rate, or 1 when no reviews exist.
func (t TopicRate) Rate() float64 {
	if t.Total == 0 {
		return 1
	}
	return float64(t.Correct) / float64(t.Total)
}

// Result is a card's computed selection priority with the reasons that
// produced it. Reason is telemetry, never a ranking input.
type Result struct {
	Priority float64
	Reason   string
}

// Score computes the selection priority for one card.
//
// reviews holds the card's recent review events, newest first; topicRates
// holds recent per-topic outcomes across all candidate cards.
func Score(card cards.Card, progress *cards.Progress, reviews []cards.Review, topicRates map[string]TopicRate, now time.Time) Result {
	var priority float64
	var reasons []string

	if progress == nil {
		priority = 100
		reasons = append(reasons, "new card")
	} else {
		daysDue := srs.DaysOverdue(progress.DueAt, now)

		switch {
		case progress.Mastered:
			if daysDue <= 0 {
				priority = 20
				reasons = append(reasons, "mastered, not due")
			} else {
				priority = 80 + minF(float64(daysDue)*10, 50)
				reasons = append(reasons, fmt.Sprintf("mastered but %d days overdue", daysDue))
			}
		case daysDue > 0:
			// Overdue unmastered cards dominate everything else.
			priority = 150 + minF(float64(daysDue)*20, 100)
			reasons = append(reasons, fmt.Sprintf("overdue %d days", daysDue))
		default:
			priority = 60 - minF(float64(-daysDue)*5, 40)
			reasons = append(reasons, "not yet due")
		}

		// Harder cards get bumped regardless of due state.
		if bump := (srs.MaxEase - progress.EaseFactor) * 20; bump > 0 {
			priority += bump
			reasons = append(reasons, "low ease")
		}
	}

	recent := reviews
	if len(recent) > RecentWindow {
		recent = recent[:RecentWindow]
	}

	if len(recent) > 0 {
		avgConf, successRate := summarize(recent)

		if avgConf < 3 {
			priority += 40
			reasons = append(reasons, "low recent confidence")
		}
		if successRate < 0.7 {
			priority += 30
			reasons = append(reasons, "low recent success")
		}

		// Short-term anti-repetition damper: reduces the accumulated
		// priority and replaces the reason text gathered so far.
		if now.Sub(recent[0].ReviewedAt) < damperAge && successRate > 0.8 && avgConf >= 4 {
			priority -= 50
			reasons = []string{"recently reviewed with high performance"}
		}
	}

	// Untagged cards take no topic adjustment.
	if card.Topic != "" {
		if tr, ok := topicRates[card.Topic]; ok && tr.Total > 0 && tr.Rate() < 0.6 {
			priority += 25
			reasons = append(reasons, "struggling topic")
		}
	}

	if priority < 0 {
		priority = 0
	}

	return Result{Priority: priority, Reason: strings.Join(reasons, "; ")}
}

func summarize(reviews []cards.Review) (avgConfidence, successRate float64) {
	var confSum, correct int
	for _, r := range reviews {
		confSum += r.Confidence
		if r.Correct {
			correct++
		}
	}
	n := float64(len(reviews))
	return float64(confSum) / n, float64(correct) / n
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
