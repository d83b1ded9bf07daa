package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidSize is returned for a payload size that is not a finite positive number.
var ErrInvalidSize = errors.New("invalid payload size")

// Size is the requested payload size in MB.
type Size float64

// ParseSize reads a size typed by the user.
func ParseSize(text string) (Size, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSize)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number: %q", ErrInvalidSize, text)
	}
	s := Size(f)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Validate rejects NaN, infinities, zero and negative sizes.
func (s Size) Validate() error {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSize, f)
	}
	return nil
}

// String formats the size the way it goes on the wire (1, 0.5, 12.25).
func (s Size) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}
