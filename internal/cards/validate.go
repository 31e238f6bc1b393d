package cards

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ReviewInput is the payload for submitting one review. Confidence and ease
// clamping elsewhere is a domain rule; everything here is a hard reject.
type ReviewInput struct {
	CardID         string `validate:"required"`
	DocumentID     string `validate:"required"`
	Correct        bool
	Confidence     int `validate:"min=1,max=5"`
	ResponseTimeMs int `validate:"min=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateReview checks a review submission before any store interaction.
func ValidateReview(in ReviewInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("invalid review: field %s failed %q", f.Field(), f.Tag())
	}
	return fmt.Errorf("invalid review: %w", err)
}
