// Package mathutil holds the numeric helpers of the math lesson.
package mathutil

import (
	"errors"
	"fmt"
	"math"

	"github.com/yourusername/walkthrough/internal/pkg/validation"
)

// ErrInvalidArgument is returned when an input is outside its domain.
var ErrInvalidArgument = errors.New("invalid argument")

var validate = validation.New()

// Square returns n*n.
func Square(n int) int {
	return n * n
}

// CircleArea returns the area of a circle with the given radius.
func CircleArea(radius float64) float64 {
	return math.Pi * math.Pow(radius, 2)
}

// InterestInput are the terms of A = P(1 + r/n)^(nt).
type InterestInput struct {
	Principal float64 `json:"principal" validate:"gte=0"`
	Rate      float64 `json:"rate" validate:"gte=0"` // annual, decimal form (0.05 for 5%)
	Periods   int     `json:"periods" validate:"gt=0"` // compounding periods per year
	Years     float64 `json:"years" validate:"gte=0"`
}

// CompoundInterest returns the final amount rounded to 2 decimal places.
func CompoundInterest(in InterestInput) (float64, error) {
	if err := validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: all input values must be positive, and periods must be greater than 0 (%v)", ErrInvalidArgument, err)
	}

	n := float64(in.Periods)
	amount := in.Principal * math.Pow(1+in.Rate/n, n*in.Years)
	return Round2(amount), nil
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
