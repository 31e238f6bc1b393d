// Package srs implements the ease-factor spaced repetition model that drives
// card scheduling. All functions are pure and take an explicit clock.
package srs

import (
	"math"
	"time"
)

// Ease factor bounds. The factor multiplies the interval after each correct
// answer; the bounds prevent runaway or collapsing schedules.
const (
	MinEase = 1.3
	MaxEase = 2.5
)

// InitialEase is the ease factor assigned on a card's first review.
const InitialEase = 2.5

// Schedule is the next review schedule computed for a card.
type Schedule struct {
	EaseFactor   float64
	IntervalDays int
	DueAt        time.Time
}

// NextSchedule computes the schedule after one review.
//
// A wrong answer resets the interval to 1 day and drops the ease factor by
// 0.2 (floored at MinEase). A correct answer graduates a 1-day interval to 6
// days, otherwise multiplies the interval by the ease factor, and shifts the
// ease factor by (confidence-3)*0.1 within [MinEase, MaxEase].
func NextSchedule(correct bool, confidence int, ease float64, intervalDays int, now time.Time) Schedule {
	var nextEase float64
	var nextInterval int

	if !correct {
		nextInterval = 1
		nextEase = math.Max(MinEase, ease-0.2)
	} else {
		if intervalDays == 1 {
			nextInterval = 6
		} else {
			nextInterval = int(math.Round(float64(intervalDays) * ease))
		}
		nextEase = ClampEase(ease + float64(confidence-3)*0.1)
	}

	if nextInterval < 1 {
		nextInterval = 1
	}

	return Schedule{
		// Two-decimal rounding keeps the stored factor stable across
		// repeated float round trips.
		EaseFactor:   math.Round(nextEase*100) / 100,
		IntervalDays: nextInterval,
		DueAt:        now.AddDate(0, 0, nextInterval),
	}
}

// ClampEase bounds an ease factor to [MinEase, MaxEase].
func ClampEase(ease float64) float64 {
	if ease < MinEase {
		return MinEase
	}
	if ease > MaxEase {
		return MaxEase
	}
	return ease
}

// DaysOverdue returns whole days elapsed past dueAt, negative when the card
// is not yet due. Comparisons here use raw timestamps, not day truncation;
// streak logic deliberately uses a different (calendar-day) clock.
func DaysOverdue(dueAt, now time.Time) int {
	return int(math.Floor(now.Sub(dueAt).Hours() / 24.0))
}

// IsDue reports whether the card is at or past its due timestamp.
func IsDue(dueAt, now time.Time) bool {
	return !now.Before(dueAt)
}
