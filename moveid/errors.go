package moveid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFlagCharacter = errors.New("invalid flag character")
	ErrMalformedLength      = errors.New("malformed length")
	ErrAmbiguousShape       = errors.New("ambiguous shape")
)

// DecodeError reports where a move-ID failed to decode. Slot and Offset are
// empty for shape errors; a failure inside a nested move-ID is wrapped with
// the slot that embeds it, so errors.Is still reaches the inner kind.
type DecodeError struct {
	ID     string
	Slot   string
	Offset int
	Char   byte
	Err    error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Slot == "":
		return fmt.Sprintf("move-id %q: %v", e.ID, e.Err)
	case e.Char != 0:
		return fmt.Sprintf("move-id %q: %s: %v %q at offset %d", e.ID, e.Slot, e.Err, e.Char, e.Offset)
	default:
		return fmt.Sprintf("move-id %q: %s: %v", e.ID, e.Slot, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
