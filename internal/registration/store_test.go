package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestSlot(t *testing.T, st *Store, dateVenue, label string, capacity int) {
	t.Helper()
	require.NoError(t, st.InsertSlot(SlotRecord{
		Label:     label,
		DateVenue: dateVenue,
		Time:      label + " session",
		Capacity:  capacity,
	}))
}

func TestStore_InsertAndGetSlot(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 4)

	slot := st.GetSlot("s1")
	require.NotNil(t, slot)
	assert.Equal(t, "s1", slot.Label())
	assert.Equal(t, "s1 session", slot.DisplayName())
	assert.Equal(t, 4, slot.Capacity())

	assert.Nil(t, st.GetSlot("missing"))
}

func TestStore_InsertSlotConflict(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 4)

	err := st.InsertSlot(SlotRecord{Label: "s1", DateVenue: "SUN Queenstown", Capacity: 4})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

// Labels are treated as globally unique on lookup even though insertion is
// keyed per date-venue: the first slot inserted under a label wins.
func TestStore_GetSlotReturnsFirstInsertedLabel(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 4)
	insertTestSlot(t, st, "SAT Hillcrest", "s1", 6)

	slot := st.GetSlot("s1")
	require.NotNil(t, slot)
	assert.Equal(t, 4, slot.Capacity())
}

func TestStore_InsertDateVenueConflict(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.InsertDateVenue("SUN Queenstown"))
	assert.ErrorIs(t, st.InsertDateVenue("SUN Queenstown"), ErrDateVenueConflict)
}

func TestStore_DisplayNameFallsBackToLabel(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.InsertSlot(SlotRecord{Label: "s1", DateVenue: "SUN", Capacity: 2}))
	assert.Equal(t, "s1", st.GetSlot("s1").DisplayName())
}

func TestStore_RegisterAndReservePlayer(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)

	require.NoError(t, st.RegisterPlayer("s1", "Alice"))
	require.NoError(t, st.ReservePlayer("s1", "Bob"))
	assert.Equal(t, []string{"Alice"}, st.GetSlot("s1").Players())
	assert.Equal(t, []string{"Bob"}, st.GetSlot("s1").NonPendingReservations())

	assert.ErrorIs(t, st.RegisterPlayer("nope", "Alice"), ErrSlotNotFound)
	assert.ErrorIs(t, st.ReservePlayer("nope", "Alice"), ErrSlotNotFound)
}

func TestStore_RegisterPlayerNameConflictLeavesStateUnchanged(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)
	require.NoError(t, st.RegisterPlayer("s1", "Alice"))

	err := st.RegisterPlayer("s1", "Alice")
	require.ErrorIs(t, err, ErrNameConflict)
	assert.Equal(t, []string{"Alice"}, st.GetSlot("s1").Players())
}

func TestStore_CollectAllKeepsRosterOrder(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s2", 2)
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)
	insertTestSlot(t, st, "SAT Hillcrest", "h1", 2)

	var labels []string
	for _, slot := range st.CollectAll() {
		labels = append(labels, slot.Label())
	}
	assert.Equal(t, []string{"s2", "s1", "h1"}, labels)
}

func TestStore_MoveAllReservesToPending(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)
	insertTestSlot(t, st, "SUN Queenstown", "s2", 1)

	require.NoError(t, st.RegisterPlayer("s1", "Alice"))
	require.NoError(t, st.ReservePlayer("s1", "Bob"))
	require.NoError(t, st.ReservePlayer("s1", "Carol"))
	require.NoError(t, st.RegisterPlayer("s2", "Dan"))
	require.NoError(t, st.ReservePlayer("s2", "Erin"))

	st.MoveAllReservesToPending()

	// s1 had a free seat: Bob is promoted, Carol stays pending.
	assert.Equal(t, []string{"Alice", "Bob"}, st.GetSlot("s1").Players())
	assert.Equal(t, []string{"Carol"}, st.GetSlot("s1").PendingReservations())
	assert.Empty(t, st.GetSlot("s1").NonPendingReservations())

	// s2 is full: Erin becomes pending instead of reserve.
	assert.Equal(t, []string{"Dan"}, st.GetSlot("s2").Players())
	assert.Equal(t, []string{"Erin"}, st.GetSlot("s2").PendingReservations())
	assert.Empty(t, st.GetSlot("s2").NonPendingReservations())
}

func TestStore_SlotLabelsInvolving(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)
	insertTestSlot(t, st, "SUN Queenstown", "s2", 2)
	require.NoError(t, st.RegisterPlayer("s1", "Alice"))
	require.NoError(t, st.ReservePlayer("s2", "Alice"))

	assert.Equal(t, []string{"s1", "s2"}, st.SlotLabelsInvolving("Alice"))
	assert.Empty(t, st.SlotLabelsInvolving("Bob"))
}

func TestStore_RenderRoundTrips(t *testing.T) {
	list := "[dv] 14/09 SUN Queenstown cc\n" +
		"[s1] 1:00-3:00 pm, #players: 2\n" +
		"   1. Alice\n" +
		"   2. Bob\n" +
		"   reserve. Carol (pending)\n" +
		"   reserve. Dan\n" +
		"[dv] 21/09 SAT Hillcrest hall\n" +
		"[h1] 9:00-11:00 am, #players: 2\n" +
		"   1. Erin\n"

	applier := Applier{MaxPlayersPerSlot: 10}
	admin := User{Username: "admin", IsAdmin: true}

	st := NewStore()
	_, err := applier.Apply(admin, list, st)
	require.NoError(t, err)
	rendered := st.Render()

	// A rendered roster parses back into an identical roster. Carol is
	// registered while the slot is full, so the (pending) tag survives.
	again := NewStore()
	_, err = applier.Apply(admin, rendered, again)
	require.NoError(t, err)
	assert.Equal(t, rendered, again.Render())

	assert.Equal(t, []string{"Carol"}, st.GetSlot("s1").PendingReservations())
	assert.Equal(t, []string{"Dan"}, st.GetSlot("s1").NonPendingReservations())
}

func TestStore_RenderAvailable(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)
	insertTestSlot(t, st, "SUN Queenstown", "s2", 1)
	require.NoError(t, st.RegisterPlayer("s2", "Alice"))

	out := st.RenderAvailable()
	assert.Contains(t, out, "[dv] SUN Queenstown")
	assert.Contains(t, out, "[s1] s1 session: 2 available")
	assert.NotContains(t, out, "[s2]")
}

func TestStore_Reset(t *testing.T) {
	st := NewStore()
	insertTestSlot(t, st, "SUN Queenstown", "s1", 2)
	st.Reset()
	assert.Nil(t, st.GetSlot("s1"))
	assert.Empty(t, st.CollectAll())
	assert.Empty(t, st.Render())
}
