package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"date-venue long marker", "[dv] 14/09 SUN Queenstown cc", LineDateVenue},
		{"date-venue short marker", "dv 14/09 SUN Queenstown cc", LineDateVenue},
		{"slot with brackets", "[s] 1:00-3:00 pm, #players: 7", LineSlot},
		{"slot bare label", "mon2 morning session", LineSlot},
		{"numbered player line", "1. Alice", LinePlayer},
		{"numbered player line no name", "4.", LinePlayer},
		{"reserve player line", "reserve. David", LinePlayer},
		{"uppercase label", "[AB] 1:00-3:00", LineUnrecognized},
		{"empty brackets", "[] 1:00-3:00", LineUnrecognized},
		{"digits only label", "[123] 1:00-3:00", LineUnrecognized},
		{"plain prose", "Hello everyone", LineUnrecognized},
		{"bare period", ".", LineUnrecognized},
		{"empty", "", LineUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestParseDateVenueLine(t *testing.T) {
	dv, err := ParseDateVenueLine("[dv] \U0001F3F8 14/09 SUN Queenstown cc")
	require.NoError(t, err)
	assert.Equal(t, "\U0001F3F8 14/09 SUN Queenstown cc", dv)

	dv, err = ParseDateVenueLine("dv 21/09 SAT Hillcrest hall")
	require.NoError(t, err)
	assert.Equal(t, "21/09 SAT Hillcrest hall", dv)

	_, err = ParseDateVenueLine("venue 21/09")
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestParseSlotLine(t *testing.T) {
	rec, err := ParseSlotLine("[s] 1:00-3:00 pm (1), #players: 7, owner: @alice")
	require.NoError(t, err)
	assert.Equal(t, "s", rec.Label)
	assert.Equal(t, "1:00-3:00 pm (1)", rec.Time)
	assert.Equal(t, 7, rec.Capacity)
	assert.Equal(t, "alice", rec.Owner)
	assert.Empty(t, rec.DateVenue)
}

func TestParseSlotLine_LooseFields(t *testing.T) {
	// Empty fields, trailing commas and shuffled keys are all tolerated.
	rec, err := ParseSlotLine("[s] 1:00-3:00 pm (1), owner: @alice ,, #players: 7,")
	require.NoError(t, err)
	assert.Equal(t, "s", rec.Label)
	assert.Equal(t, 7, rec.Capacity)
	assert.Equal(t, "alice", rec.Owner)
}

func TestParseSlotLine_NoCapacity(t *testing.T) {
	rec, err := ParseSlotLine("[mon1] 7:00-9:00 pm")
	require.NoError(t, err)
	assert.Equal(t, "mon1", rec.Label)
	assert.Equal(t, "7:00-9:00 pm", rec.Time)
	assert.Equal(t, -1, rec.Capacity)
	assert.Empty(t, rec.Owner)
}

func TestParseSlotLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing brackets", "1:00-3:00 pm (1), #players: 7"},
		{"unknown key", "[s] 1:00-3:00, court: 5"},
		{"capacity not an integer", "[s] 1:00-3:00, #players: seven"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlotLine(tt.line)
			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestParsePlayerLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want PlayerEntry
	}{
		{"pending payment", "   1. Alice (pending payment)", PlayerEntry{Name: "Alice"}},
		{"paid", "   2. Bob (paid)", PlayerEntry{Name: "Bob", Paid: true}},
		{"plain", "   3. Charlie", PlayerEntry{Name: "Charlie"}},
		{"reserve", "   reserve. David", PlayerEntry{Name: "David", Reserve: true}},
		{"reserve pending", "   reserve. Eve (pending)", PlayerEntry{Name: "Eve", Reserve: true, Pending: true}},
		{"hash row label", "#4. Frank", PlayerEntry{Name: "Frank"}},
		{"unicode name", "5. Uy(Đem Cầu)", PlayerEntry{Name: "Uy(Đem Cầu)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := ParsePlayerLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, entry)
		})
	}
}

func TestParsePlayerLine_EmptySeat(t *testing.T) {
	for _, line := range []string{"4.", "   4. ", "1. (pending)", "reserve."} {
		_, ok := ParsePlayerLine(line)
		assert.False(t, ok, "line %q should carry no player", line)
	}
}
