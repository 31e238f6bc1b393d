package scheduler

import (
	"sort"
	"time"

	"github.com/studykit/studykit/internal/cards"
)

// DefaultSessionSize caps a study queue when the caller passes no limit.
const DefaultSessionSize = 20

// ScoredCard pairs a card with its computed priority for the study queue.
type ScoredCard struct {
	Card     cards.Card
	Priority float64
	Reason   string
}

// SelectSession ranks the candidate cards and returns the study queue,
// highest priority first, truncated to maxSize. The sort is stable so equal
// priorities keep the caller's card order; the result is deterministic for
// identical inputs and never repeats a card.
func SelectSession(candidates []cards.Card, progress []cards.Progress, recentReviews []cards.Review, maxSize int, now time.Time) []ScoredCard {
	if maxSize <= 0 {
		maxSize = DefaultSessionSize
	}

	progressByCard := make(map[string]*cards.Progress, len(progress))
	for i := range progress {
		progressByCard[progress[i].CardID] = &progress[i]
	}
	reviewsByCard := groupByCard(recentReviews)
	topicRates := TopicRates(candidates, recentReviews)

	scored := make([]ScoredCard, 0, len(candidates))
	for _, c := range candidates {
		res := Score(c, progressByCard[c.ID], reviewsByCard[c.ID], topicRates, now)
		scored = append(scored, ScoredCard{Card: c, Priority: res.Priority, Reason: res.Reason})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Priority > scored[j].Priority
	})

	if len(scored) > maxSize {
		scored = scored[:maxSize]
	}
	return scored
}

// TopicRates aggregates recent review outcomes per topic across the
// candidate set. Reviews for cards outside the set are ignored.
func TopicRates(candidates []cards.Card, reviews []cards.Review) map[string]TopicRate {
	topicByCard := make(map[string]string, len(candidates))
	for _, c := range candidates {
		topicByCard[c.ID] = c.TopicOf()
	}

	rates := make(map[string]TopicRate)
	for _, r := range reviews {
		topic, ok := topicByCard[r.CardID]
		if !ok {
			continue
		}
		tr := rates[topic]
		tr.Total++
		if r.Correct {
			tr.Correct++
		}
		rates[topic] = tr
	}
	return rates
}

// groupByCard buckets reviews by card id, preserving the caller's
// newest-first ordering within each bucket.
func groupByCard(reviews []cards.Review) map[string][]cards.Review {
	byCard := make(map[string][]cards.Review)
	for _, r := range reviews {
		byCard[r.CardID] = append(byCard[r.CardID], r)
	}
	return byCard
}
