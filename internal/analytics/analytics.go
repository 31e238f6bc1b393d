// Package analytics computes learner dashboards from accumulated review
// history: streaks, accuracy and speed trends, and topic breakdowns.
// Everything here is advisory; failures degrade to zero values, never errors.
package analytics

import (
	"sort"
	"time"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/srs"
)

// Trend direction for a metric: -1 declining, 0 stable, +1 improving.
type Trend int

const (
	TrendDown   Trend = -1
	TrendStable Trend = 0
	TrendUp     Trend = 1
)

// Noise thresholds below which a metric change counts as stable.
const (
	accuracyNoise   = 0.05
	confidenceNoise = 0.2
	speedNoiseMs    = 1000
)

// TopicPerformance reports per-topic accuracy over the analysis window.
type TopicPerformance struct {
	Topic       string  `json:"topic"`
	Accuracy    float64 `json:"accuracy"`
	ReviewCount int     `json:"review_count"`
}

// LearningAnalytics is the full dashboard payload for one learner.
type LearningAnalytics struct {
	StreakDays      int                `json:"streak_days"`
	Accuracy        float64            `json:"accuracy"`
	AvgConfidence   float64            `json:"avg_confidence"`
	AccuracyTrend   Trend              `json:"accuracy_trend"`
	ConfidenceTrend Trend              `json:"confidence_trend"`
	SpeedTrend      Trend              `json:"speed_trend"`
	Topics          []TopicPerformance `json:"topics"`
	MasteredCount   int                `json:"mastered_count"`
	StrugglingCount int                `json:"struggling_count"`
	TotalReviews    int                `json:"total_reviews"`
	StudyTimeMs     int64              `json:"study_time_ms"`
}

// Compute builds analytics from a 14-day review window, the learner's cards
// and progress, and the last week's study sessions. now anchors all windows.
func Compute(reviews []cards.Review, cardList []cards.Card, progress []cards.Progress, sessions []cards.Session, now time.Time) LearningAnalytics {
	var a LearningAnalytics
	a.TotalReviews = len(reviews)
	a.StreakDays = Streak(reviews, now)

	weekAgo := now.AddDate(0, 0, -7)
	var week []cards.Review
	for _, r := range reviews {
		if !r.ReviewedAt.Before(weekAgo) {
			week = append(week, r)
		}
	}
	if len(week) == 0 {
		// Fewer reviews than a full week: fall back to everything available.
		week = reviews
	}
	a.Accuracy, a.AvgConfidence, _ = means(week)

	a.AccuracyTrend, a.ConfidenceTrend, a.SpeedTrend = trends(reviews, now)
	a.Topics = topicBreakdown(reviews, cardList)

	for _, p := range progress {
		if p.Mastered {
			a.MasteredCount++
			continue
		}
		if p.ReviewCount >= 3 && srs.IsDue(p.DueAt, now) {
			a.StrugglingCount++
		}
	}

	for _, s := range sessions {
		a.StudyTimeMs += s.DurationMs
	}

	return a
}

// Streak counts consecutive UTC calendar days with at least one review,
// walking backward from today when today has activity, otherwise from
// yesterday. No activity on either day means a streak of zero.
func Streak(reviews []cards.Review, now time.Time) int {
	days := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		days[dayKey(r.ReviewedAt)] = true
	}

	cursor := now.UTC()
	if !days[dayKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
		if !days[dayKey(cursor)] {
			return 0
		}
	}

	streak := 0
	for days[dayKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// dayKey truncates a timestamp to its UTC calendar day. Streaks run on this
// clock; due/overdue selection runs on raw timestamps (see srs.DaysOverdue).
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func means(reviews []cards.Review) (accuracy, avgConfidence, avgResponseMs float64) {
	if len(reviews) == 0 {
		return 0, 0, 0
	}
	var correct, confSum, respSum int
	for _, r := range reviews {
		if r.Correct {
			correct++
		}
		confSum += r.Confidence
		respSum += r.ResponseTimeMs
	}
	n := float64(len(reviews))
	return float64(correct) / n, float64(confSum) / n, float64(respSum) / n
}

// trends compares the most recent 7 days against the 7 before them. Either
// half being empty yields stable signals.
func trends(reviews []cards.Review, now time.Time) (accuracy, confidence, speed Trend) {
	weekAgo := now.AddDate(0, 0, -7)
	fortnightAgo := now.AddDate(0, 0, -14)

	var recent, prior []cards.Review
	for _, r := range reviews {
		switch {
		case !r.ReviewedAt.Before(weekAgo):
			recent = append(recent, r)
		case !r.ReviewedAt.Before(fortnightAgo):
			prior = append(prior, r)
		}
	}
	if len(recent) == 0 || len(prior) == 0 {
		return TrendStable, TrendStable, TrendStable
	}

	recAcc, recConf, recResp := means(recent)
	priAcc, priConf, priResp := means(prior)

	accuracy = signal(recAcc-priAcc, accuracyNoise)
	confidence = signal(recConf-priConf, confidenceNoise)
	// Lower latency is the improving direction for speed.
	speed = signal(priResp-recResp, speedNoiseMs)
	return accuracy, confidence, speed
}

func signal(delta, noise float64) Trend {
	switch {
	case delta > noise:
		return TrendUp
	case delta < -noise:
		return TrendDown
	default:
		return TrendStable
	}
}

// topicBreakdown groups reviews by the owning card's topic, most reviewed
// topic first.
func topicBreakdown(reviews []cards.Review, cardList []cards.Card) []TopicPerformance {
	topicByCard := make(map[string]string, len(cardList))
	for _, c := range cardList {
		topicByCard[c.ID] = c.TopicOf()
	}

	type agg struct{ correct, total int }
	byTopic := make(map[string]*agg)
	for _, r := range reviews {
		topic, ok := topicByCard[r.CardID]
		if !ok {
			topic = cards.DefaultTopic
		}
		a := byTopic[topic]
		if a == nil {
			a = &agg{}
			byTopic[topic] = a
		}
		a.total++
		if r.Correct {
			a.correct++
		}
	}

	out := make([]TopicPerformance, 0, len(byTopic))
	for topic, a := range byTopic {
		out = append(out, TopicPerformance{
			Topic:       topic,
			Accuracy:    float64(a.correct) / float64(a.total),
			ReviewCount: a.total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}
