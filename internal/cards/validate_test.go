package cards

import "testing"

func TestValidateReview_OK(t *testing.T) {
	in := ReviewInput{CardID: "c1", DocumentID: "d1", Correct: true, Confidence: 3, ResponseTimeMs: 1200}
	if err := ValidateReview(in); err != nil {
		t.Errorf("ValidateReview() = %v, want nil", err)
	}
}

func TestValidateReview_MissingCardID(t *testing.T) {
	in := ReviewInput{DocumentID: "d1", Confidence: 3}
	if err := ValidateReview(in); err == nil {
		t.Error("expected error for missing card id")
	}
}

func TestValidateReview_ConfidenceRange(t *testing.T) {
	for _, c := range []int{0, 6, -1} {
		in := ReviewInput{CardID: "c1", DocumentID: "d1", Confidence: c}
		if err := ValidateReview(in); err == nil {
			t.Errorf("confidence %d: expected error", c)
		}
	}
	for c := 1; c <= 5; c++ {
		in := ReviewInput{CardID: "c1", DocumentID: "d1", Confidence: c}
		if err := ValidateReview(in); err != nil {
			t.Errorf("confidence %d: unexpected error %v", c, err)
		}
	}
}

func TestValidateReview_NegativeResponseTime(t *testing.T) {
	in := ReviewInput{CardID: "c1", DocumentID: "d1", Confidence: 3, ResponseTimeMs: -5}
	if err := ValidateReview(in); err == nil {
		t.Error("expected error for negative response time")
	}
}

func TestTopicOf_Default(t *testing.T) {
	if got := (Card{}).TopicOf(); got != DefaultTopic {
		t.Errorf("TopicOf() = %q, want %q", got, DefaultTopic)
	}
	if got := (Card{Topic: "Biology"}).TopicOf(); got != "Biology" {
		t.Errorf("TopicOf() = %q, want Biology", got)
	}
}
