package registration

import (
	"fmt"
	"strings"
)

// Applier turns a pasted multi-line roster into store mutations. Lines are
// classified and applied one at a time while the current date-venue and
// slot label are carried forward as context for the lines that follow.
//
// The first failing line aborts the batch and the error propagates to the
// caller verbatim. Mutations already applied to the store are NOT rolled
// back; callers that need all-or-nothing semantics apply into a fresh
// store and swap it in on success (see the chat layer's list replacement).
type Applier struct {
	// MaxPlayersPerSlot caps declared capacities and is the default for
	// headers that declare none.
	MaxPlayersPerSlot int

	// SlotExtraCost is the per-player fee applied to every slot created by
	// this applier. 0 disables payment tracking display.
	SlotExtraCost int
}

// Apply processes message line by line against store, acting as user for
// payment confirmations. It returns whether at least one line was
// processed; all-blank input yields false rather than an error.
func (a Applier) Apply(user User, message string, store *Store) (bool, error) {
	var (
		currentDateVenue string
		currentSlotLabel string
		haveDateVenue    bool
		haveSlotLabel    bool
	)

	processed := 0
	for _, raw := range strings.Split(message, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		processed++

		switch Classify(line) {
		case LineDateVenue:
			dv, err := ParseDateVenueLine(line)
			if err != nil {
				return false, err
			}
			currentDateVenue = dv
			haveDateVenue = true
			haveSlotLabel = false

		case LineSlot:
			rec, err := ParseSlotLine(line)
			if err != nil {
				return false, err
			}
			rec.DateVenue = currentDateVenue
			if rec.Capacity < 0 {
				rec.Capacity = a.MaxPlayersPerSlot
			}
			if rec.Capacity > a.MaxPlayersPerSlot {
				return false, fmt.Errorf("%w: %s (maximum is %d)", ErrCapacityExceeded, line, a.MaxPlayersPerSlot)
			}
			rec.ExtraCost = a.SlotExtraCost
			if err := store.InsertSlot(rec); err != nil {
				return false, err
			}
			currentSlotLabel = rec.Label
			haveSlotLabel = true

		case LinePlayer:
			entry, ok := ParsePlayerLine(line)
			if !ok {
				// Unfilled numbered seat; consumed, nothing to apply.
				continue
			}
			if !haveDateVenue {
				return false, fmt.Errorf("%w: %s", ErrDateVenueNotFound, line)
			}
			if !haveSlotLabel {
				return false, fmt.Errorf("%w: %s", ErrSlotNotFound, line)
			}
			var err error
			if entry.Reserve && !entry.Pending {
				err = store.ReservePlayer(currentSlotLabel, entry.Name)
			} else {
				err = store.RegisterPlayer(currentSlotLabel, entry.Name)
			}
			if err != nil {
				return false, err
			}
			if entry.Paid {
				if _, err := store.GetSlot(currentSlotLabel).ConfirmPayment(entry.Name, user); err != nil {
					return false, err
				}
			}

		default:
			return false, &SyntaxError{Line: line}
		}
	}
	return processed > 0, nil
}
