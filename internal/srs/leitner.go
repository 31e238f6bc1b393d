package srs

// BoxIntervals is the fixed Leitner schedule in days, indexed by box number.
// The ease-factor model is canonical; the box number shown on display
// surfaces is re-derived from the stored interval so the two can never drift.
var BoxIntervals = []int{0, 1, 3, 7, 14, 30}

// MaxBox is the highest Leitner box number.
const MaxBox = 5

// BoxForInterval maps a canonical interval to the highest Leitner box whose
// fixed interval does not exceed it.
func BoxForInterval(intervalDays int) int {
	box := 0
	for i, d := range BoxIntervals {
		if intervalDays >= d {
			box = i
		}
	}
	return box
}
