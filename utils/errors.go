package utils

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned before any work is done when the
	// ciphertext, key or configuration cannot be used.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientData marks a key length or column that is too short to
	// score. The ranker skips such lengths instead of failing.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrNoViableCandidate is returned when every key length was skipped.
	ErrNoViableCandidate = errors.New("no viable key length candidate")
)
