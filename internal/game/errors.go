package game

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange marks an invalid scene, choice or slot index. It points at
	// a content or caller defect and is never recovered silently.
	ErrOutOfRange = errors.New("index out of range")
	// ErrIntentUnavailable is returned when an intent does not apply to the
	// current presentation mode, e.g. Advance while a choice list is shown.
	ErrIntentUnavailable = errors.New("intent not available")
	// ErrInvalidStory is returned by Validate for malformed content.
	ErrInvalidStory = errors.New("invalid story")
)

func outOfRange(what string, i, n int) error {
	return fmt.Errorf("%s %d not in [0,%d): %w", what, i, n, ErrOutOfRange)
}
