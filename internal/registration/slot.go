package registration

import (
	"fmt"
	"strings"
)

// Slot is one bookable session: a capacity-bounded main list plus two
// reserve lists. Names on the pending list are promoted into the main list
// first-come-first-served whenever a seat frees up; names on the
// non-pending list stay put until somebody registers them explicitly.
//
// A name appears in at most one of the three lists at any time. Slot is not
// safe for concurrent use; callers serialize access (see Store).
type Slot struct {
	label       string
	displayName string
	capacity    int
	extraCost   int
	owner       string

	players    []string
	pending    []string
	nonPending []string
	paid       map[string]bool
}

// NewSlot creates an empty slot. extraCost is the per-player fee in
// whatever unit the organizer uses; 0 means the slot is free and payment
// status is not rendered. owner may be empty.
func NewSlot(label, displayName string, capacity, extraCost int, owner string) *Slot {
	return &Slot{
		label:       label,
		displayName: displayName,
		capacity:    capacity,
		extraCost:   extraCost,
		owner:       owner,
		paid:        map[string]bool{},
	}
}

func (s *Slot) Label() string       { return s.label }
func (s *Slot) DisplayName() string { return s.displayName }
func (s *Slot) Capacity() int       { return s.capacity }
func (s *Slot) ExtraCost() int      { return s.extraCost }
func (s *Slot) Owner() string       { return s.owner }

// Players returns the main list. The returned slice is the slot's own;
// callers must not mutate it.
func (s *Slot) Players() []string { return s.players }

// PendingReservations returns the auto-promoted waitlist, oldest first.
func (s *Slot) PendingReservations() []string { return s.pending }

// NonPendingReservations returns the reserve list that is never promoted
// automatically.
func (s *Slot) NonPendingReservations() []string { return s.nonPending }

// IsInAnyList reports whether name is present in the main list or either
// reserve list.
func (s *Slot) IsInAnyList(name string) bool {
	return contains(s.players, name) || contains(s.pending, name) || contains(s.nonPending, name)
}

// NumAvailable returns the number of unfilled seats in the main list.
func (s *Slot) NumAvailable() int {
	return s.capacity - len(s.players)
}

// IsPaid reports whether name's payment has been confirmed.
func (s *Slot) IsPaid(name string) bool { return s.paid[name] }

// Register adds name to the main list, or to the pending waitlist when the
// main list is full. A name sitting on the non-pending reserve list is
// removed first and re-enters through the normal path, so registering a
// reserve upgrades them. Registering a name already present anywhere else
// fails with ErrNameConflict and leaves the slot unchanged.
func (s *Slot) Register(name string) error {
	// Upgrade path: drop the non-pending reservation, then fall through to
	// the ordinary insert below.
	remove(&s.nonPending, name)

	if s.IsInAnyList(name) {
		return fmt.Errorf("%w: %s", ErrNameConflict, name)
	}
	if len(s.players) < s.capacity {
		s.players = append(s.players, name)
	} else {
		s.pending = append(s.pending, name)
	}
	s.Restructure()
	return nil
}

// Reserve moves name onto the non-pending reserve list, pulling it out of
// the main list or pending waitlist if seated there. It is idempotent and
// never fails; note that reserving a seated player frees their seat for
// the next pending name.
func (s *Slot) Reserve(name string) {
	remove(&s.players, name)
	remove(&s.pending, name)
	if !contains(s.nonPending, name) {
		s.nonPending = append(s.nonPending, name)
	}
	s.Restructure()
}

// Restructure fills main-list vacancies from the pending waitlist, oldest
// entry first. Idempotent.
func (s *Slot) Restructure() {
	for len(s.players) < s.capacity && len(s.pending) > 0 {
		s.players = append(s.players, s.pending[0])
		s.pending = s.pending[1:]
	}
}

// ConfirmPayment marks name's payment as confirmed. Only an admin or the
// slot's owner (by username or alias) may confirm; anyone else gets
// ErrActionNotAllowed. Confirming a name that is already confirmed, or not
// currently seated in the main list, is a no-op and returns false.
func (s *Slot) ConfirmPayment(name string, actioner User) (bool, error) {
	if !s.canManagePayments(actioner) {
		return false, fmt.Errorf("%w: %s may not manage payments for slot %s", ErrActionNotAllowed, actioner.Username, s.label)
	}
	if s.paid[name] || !contains(s.players, name) {
		return false, nil
	}
	s.paid[name] = true
	return true, nil
}

// UnconfirmPayment reverts ConfirmPayment. Same permission rule; returns
// false when there is nothing to revert.
func (s *Slot) UnconfirmPayment(name string, actioner User) (bool, error) {
	if !s.canManagePayments(actioner) {
		return false, fmt.Errorf("%w: %s may not manage payments for slot %s", ErrActionNotAllowed, actioner.Username, s.label)
	}
	if !s.paid[name] {
		return false, nil
	}
	delete(s.paid, name)
	return true, nil
}

func (s *Slot) canManagePayments(actioner User) bool {
	if actioner.IsAdmin {
		return true
	}
	if s.owner == "" {
		return false
	}
	return actioner.Username == s.owner || (actioner.Alias != "" && actioner.Alias == s.owner)
}

// Render produces the slot's display block: a header line, one numbered
// line per seat (blank when unfilled), pending reservations tagged
// "(pending)" and non-pending reservations untagged. Slots with an extra
// cost additionally annotate each seated player with their payment status.
func (s *Slot) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s, %s %d\n", s.label, s.displayName, NumPlayersKey, s.capacity)
	for i := 0; i < s.capacity; i++ {
		fmt.Fprintf(&b, "%s%d.", IndentSpace, i+1)
		if i < len(s.players) {
			b.WriteString(" " + s.players[i])
			if s.extraCost > 0 {
				if s.paid[s.players[i]] {
					b.WriteString(" " + PaidMarker)
				} else {
					b.WriteString(" " + PendingPaymentMarker)
				}
			}
		}
		b.WriteString("\n")
	}
	for _, name := range s.pending {
		fmt.Fprintf(&b, "%s%s. %s %s\n", IndentSpace, ReserveMarker, name, PendingMarker)
	}
	for _, name := range s.nonPending {
		fmt.Fprintf(&b, "%s%s. %s\n", IndentSpace, ReserveMarker, name)
	}
	return b.String()
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// remove deletes the first occurrence of name, reporting whether it was
// present.
func remove(list *[]string, name string) bool {
	for i, s := range *list {
		if s == name {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
