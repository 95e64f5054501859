package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrValidationFailed = errors.New("validation failed")

// ValidateLots accepts only finite, strictly positive lot counts.
// The engine itself computes with whatever it is given.
func ValidateLots(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: lots must be a finite number", ErrValidationFailed)
	}
	if v <= 0 {
		return fmt.Errorf("%w: lots must be greater than zero, got %v", ErrValidationFailed, v)
	}
	return nil
}

// ParseLots reads a lot count typed by a user and validates it.
func ParseLots(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: lots is required", ErrValidationFailed)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: lots %q is not a number", ErrValidationFailed, s)
	}
	if err := ValidateLots(v); err != nil {
		return 0, err
	}
	return v, nil
}
