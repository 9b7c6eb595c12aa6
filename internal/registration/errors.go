package registration

import (
	"errors"
	"fmt"
)

// Error kinds raised by the store, the slots and the list pipeline. The
// pipeline aborts on the first of these and propagates it verbatim; the
// chat layer is responsible for presenting it to the user.
var (
	ErrDateVenueNotFound = errors.New("date-venue not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrDateVenueConflict = errors.New("date-venue already exists")
	ErrSlotConflict      = errors.New("slot already exists")
	ErrNameConflict      = errors.New("name already registered")
	ErrCapacityExceeded  = errors.New("number of players exceeds the maximum allowed")
	ErrActionNotAllowed  = errors.New("action not allowed")
)

// SyntaxError reports a line that could not be parsed. Hint is optional.
type SyntaxError struct {
	Line string
	Hint string
}

func (e *SyntaxError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("possible syntax error at %q (%s)", e.Line, e.Hint)
	}
	return fmt.Sprintf("possible syntax error at %q", e.Line)
}
