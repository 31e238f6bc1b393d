package scheduler

import (
	"sort"
	"time"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/srs"
)

// Session size bounds for the recommendation.
const (
	minSessionSize = 5
	maxSessionSize = 20
	// A learner drowning in struggling cards gets a shorter session.
	strainedSessionSize = 15
)

// Recommendation summarizes what the learner should study next.
type Recommendation struct {
	DueCount               int      `json:"due_count"`
	NewCount               int      `json:"new_count"`
	StrugglingCount        int      `json:"struggling_count"`
	RecommendedSessionSize int      `json:"recommended_session_size"`
	FocusTopics            []string `json:"focus_topics"`
}

// Recommend computes the study recommendation for a candidate set.
func Recommend(candidates []cards.Card, progress []cards.Progress, recentReviews []cards.Review, now time.Time) Recommendation {
	progressByCard := make(map[string]*cards.Progress, len(progress))
	for i := range progress {
		progressByCard[progress[i].CardID] = &progress[i]
	}
	reviewsByCard := groupByCard(recentReviews)

	var rec Recommendation
	for _, c := range candidates {
		p := progressByCard[c.ID]
		if p == nil {
			rec.NewCount++
			continue
		}
		if !p.Mastered && srs.IsDue(p.DueAt, now) {
			rec.DueCount++
		}
		if isStruggling(reviewsByCard[c.ID]) {
			rec.StrugglingCount++
		}
	}

	rec.FocusTopics = focusTopics(candidates, recentReviews)

	newContribution := rec.NewCount
	if newContribution > 5 {
		newContribution = 5
	}
	size := rec.DueCount + newContribution
	if size < minSessionSize {
		size = minSessionSize
	}
	if size > maxSessionSize {
		size = maxSessionSize
	}
	if rec.StrugglingCount > 10 && size > strainedSessionSize {
		size = strainedSessionSize
	}
	rec.RecommendedSessionSize = size

	return rec
}

// isStruggling reports whether a card's last three reviews show a success
// rate under 0.7. Cards with fewer than three recent reviews never qualify.
func isStruggling(reviews []cards.Review) bool {
	if len(reviews) < 3 {
		return false
	}
	correct := 0
	for _, r := range reviews[:3] {
		if r.Correct {
			correct++
		}
	}
	return float64(correct)/3 < 0.7
}

// focusTopics returns up to three topics with at least three recent reviews,
// worst success rate first.
func focusTopics(candidates []cards.Card, reviews []cards.Review) []string {
	rates := TopicRates(candidates, reviews)

	type topicStat struct {
		topic string
		rate  float64
	}
	var stats []topicStat
	for topic, tr := range rates {
		if tr.Total < 3 {
			continue
		}
		stats = append(stats, topicStat{topic: topic, rate: tr.Rate()})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].rate != stats[j].rate {
			return stats[i].rate < stats[j].rate
		}
		return stats[i].topic < stats[j].topic
	})

	var topics []string
	for i := 0; i < len(stats) && i < 3; i++ {
		topics = append(topics, stats[i].topic)
	}
	return topics
}
