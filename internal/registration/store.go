package registration

import (
	"fmt"
	"strings"
)

// Store owns every slot, grouped by date-venue. Insertion is keyed by
// (date-venue, label) for conflict detection, but lookups treat labels as
// globally unique: a flat label index points at the first slot inserted
// under each label, which matches the lookup order of the grouped form.
//
// The store does no locking; callers serialize batches around it.
type Store struct {
	byDateVenue map[string]map[string]*Slot
	byLabel     map[string]*Slot

	// Insertion order, so rendering and collection walk the roster in the
	// order it was written.
	dateVenues []string
	slotOrder  map[string][]string
}

func NewStore() *Store {
	return &Store{
		byDateVenue: map[string]map[string]*Slot{},
		byLabel:     map[string]*Slot{},
		slotOrder:   map[string][]string{},
	}
}

// Reset drops every date-venue and slot.
func (st *Store) Reset() {
	st.byDateVenue = map[string]map[string]*Slot{}
	st.byLabel = map[string]*Slot{}
	st.dateVenues = nil
	st.slotOrder = map[string][]string{}
}

// InsertDateVenue creates an empty date-venue group. Fails with
// ErrDateVenueConflict when it already exists.
func (st *Store) InsertDateVenue(dateVenue string) error {
	if _, ok := st.byDateVenue[dateVenue]; ok {
		return fmt.Errorf("%w: %s", ErrDateVenueConflict, dateVenue)
	}
	st.byDateVenue[dateVenue] = map[string]*Slot{}
	st.dateVenues = append(st.dateVenues, dateVenue)
	return nil
}

// InsertSlot creates a slot from a parsed header record, creating the
// date-venue group if needed. A duplicate label within the same date-venue
// fails with ErrSlotConflict. The slot's display name falls back to the
// label when the header carried no time text.
func (st *Store) InsertSlot(rec SlotRecord) error {
	slots, ok := st.byDateVenue[rec.DateVenue]
	if !ok {
		slots = map[string]*Slot{}
		st.byDateVenue[rec.DateVenue] = slots
		st.dateVenues = append(st.dateVenues, rec.DateVenue)
	}
	if _, ok := slots[rec.Label]; ok {
		return fmt.Errorf("%w: %s", ErrSlotConflict, rec.Label)
	}

	displayName := rec.Time
	if displayName == "" {
		displayName = rec.Label
	}
	slot := NewSlot(rec.Label, displayName, rec.Capacity, rec.ExtraCost, rec.Owner)
	slots[rec.Label] = slot
	st.slotOrder[rec.DateVenue] = append(st.slotOrder[rec.DateVenue], rec.Label)

	// First insertion wins, like a first-match scan over the grouped form.
	if _, ok := st.byLabel[rec.Label]; !ok {
		st.byLabel[rec.Label] = slot
	}
	return nil
}

// GetSlot returns the slot with the given label, from any date-venue, or
// nil when no such slot exists.
func (st *Store) GetSlot(label string) *Slot {
	return st.byLabel[label]
}

// RegisterPlayer registers name into the labelled slot.
func (st *Store) RegisterPlayer(label, name string) error {
	slot := st.GetSlot(label)
	if slot == nil {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, label)
	}
	return slot.Register(name)
}

// ReservePlayer puts name on the labelled slot's non-pending reserve list.
func (st *Store) ReservePlayer(label, name string) error {
	slot := st.GetSlot(label)
	if slot == nil {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, label)
	}
	slot.Reserve(name)
	return nil
}

// RestructureAll runs the pending-list promotion pass on every slot.
func (st *Store) RestructureAll() {
	for _, slot := range st.CollectAll() {
		slot.Restructure()
	}
}

// MoveAllReservesToPending appends every slot's non-pending reservations to
// its pending list, in order, then restructures. Admin bulk operation.
func (st *Store) MoveAllReservesToPending() {
	for _, slot := range st.CollectAll() {
		slot.pending = append(slot.pending, slot.nonPending...)
		slot.nonPending = nil
	}
	st.RestructureAll()
}

// CollectAll flattens the store into a slice of slots in roster order.
func (st *Store) CollectAll() []*Slot {
	var out []*Slot
	for _, dv := range st.dateVenues {
		for _, label := range st.slotOrder[dv] {
			out = append(out, st.byDateVenue[dv][label])
		}
	}
	return out
}

// SlotLabelsInvolving returns the labels of every slot that has name on any
// of its lists.
func (st *Store) SlotLabelsInvolving(name string) []string {
	var out []string
	for _, slot := range st.CollectAll() {
		if slot.IsInAnyList(name) {
			out = append(out, slot.label)
		}
	}
	return out
}

// Render produces the full roster text: a date-venue header line followed
// by each slot's block. The output parses back through Applier.Apply.
func (st *Store) Render() string {
	var b strings.Builder
	for _, dv := range st.dateVenues {
		fmt.Fprintf(&b, "%s %s\n", DateVenueMarker, dv)
		for _, label := range st.slotOrder[dv] {
			b.WriteString(st.byDateVenue[dv][label].Render())
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderAvailable lists only the slots that still have free seats.
func (st *Store) RenderAvailable() string {
	var b strings.Builder
	for _, dv := range st.dateVenues {
		header := false
		for _, label := range st.slotOrder[dv] {
			slot := st.byDateVenue[dv][label]
			n := slot.NumAvailable()
			if n <= 0 {
				continue
			}
			if !header {
				fmt.Fprintf(&b, "%s %s\n", DateVenueMarker, dv)
				header = true
			}
			fmt.Fprintf(&b, "%s[%s] %s: %d available\n", IndentSpace, slot.label, slot.displayName, n)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
