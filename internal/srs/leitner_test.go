package srs

import "testing"

func TestBoxForInterval(t *testing.T) {
	tests := []struct {
		interval int
		want     int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{6, 2},
		{7, 3},
		{14, 4},
		{29, 4},
		{30, 5},
		{365, 5},
	}
	for _, tt := range tests {
		if got := BoxForInterval(tt.interval); got != tt.want {
			t.Errorf("BoxForInterval(%d) = %d, want %d", tt.interval, got, tt.want)
		}
	}
}

func TestBoxIntervals(t *testing.T) {
	expected := []int{0, 1, 3, 7, 14, 30}
	if len(BoxIntervals) != len(expected) {
		t.Fatalf("expected %d intervals, got %d", len(expected), len(BoxIntervals))
	}
	for i, v := range expected {
		if BoxIntervals[i] != v {
			t.Errorf("BoxIntervals[%d] = %d, want %d", i, BoxIntervals[i], v)
		}
	}
	if MaxBox != len(BoxIntervals)-1 {
		t.Errorf("MaxBox = %d, want %d", MaxBox, len(BoxIntervals)-1)
	}
}
