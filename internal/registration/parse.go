package registration

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// LineKind classifies a trimmed roster line by its shape.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineDateVenue
	LineSlot
	LinePlayer
)

// Classify determines a line's kind from its first token only. It never
// fails; lines matching none of the three shapes are LineUnrecognized.
// Only the parsers report syntax errors.
func Classify(line string) LineKind {
	first := firstWord(line)
	switch {
	case first == DateVenueMarker || first == DateVenueShortMarker:
		return LineDateVenue
	case isSlotLabel(stripBrackets(first)):
		return LineSlot
	case strings.HasSuffix(first, ".") && len(first) >= 2:
		return LinePlayer
	default:
		return LineUnrecognized
	}
}

func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// stripBrackets removes one enclosing bracket pair, if present. "[x]"
// yields "x", "[]" yields "", anything unbracketed is returned as is.
func stripBrackets(token string) string {
	if strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
		if len(token) >= 3 {
			return strings.TrimSpace(token[1 : len(token)-1])
		}
		return ""
	}
	return token
}

// isSlotLabel reports whether tag is a valid slot label: non-empty,
// alphanumeric, containing at least one letter and no uppercase.
func isSlotLabel(tag string) bool {
	if tag == "" {
		return false
	}
	hasLower := false
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasLower
}

// ParseDateVenueLine strips the date-venue marker and returns the rest of
// the line verbatim as the date-venue label. Any content is accepted there,
// emoji included.
func ParseDateVenueLine(line string) (string, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, DateVenueMarker) {
		return strings.TrimSpace(line[len(DateVenueMarker):]), nil
	}
	if strings.HasPrefix(line, DateVenueShortMarker) {
		return strings.TrimSpace(line[len(DateVenueShortMarker):]), nil
	}
	return "", &SyntaxError{Line: line, Hint: "line must start with " + DateVenueMarker + " or " + DateVenueShortMarker}
}

var slotHeadRe = regexp.MustCompile(`\[(.+)\](.*)`)

// ParseSlotLine parses a slot header shaped
//
//	[label] time text, #players: 7, owner: @alice
//
// The first comma-separated field must carry the bracketed label; the text
// after the closing bracket becomes the slot's time. Remaining fields are
// "key: value" pairs; the two recognized keys are the capacity key and the
// owner key (a leading "@" on the owner is stripped). Empty fields are
// skipped, unknown keys are syntax errors. The returned record has
// Capacity -1 when no capacity field was present, and DateVenue blank.
func ParseSlotLine(line string) (SlotRecord, error) {
	rec := SlotRecord{Capacity: -1}
	for idx, part := range strings.Split(strings.TrimSpace(line), ",") {
		part = strings.TrimSpace(part)
		if idx == 0 {
			m := slotHeadRe.FindStringSubmatch(part)
			if m == nil {
				return SlotRecord{}, &SyntaxError{Line: line, Hint: "expecting slot [x]"}
			}
			rec.Label = strings.TrimSpace(m[1])
			rec.Time = strings.TrimSpace(m[2])
			continue
		}
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			// Loose human input; fields without a colon are ignored.
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case strings.TrimSuffix(NumPlayersKey, ":"):
			n, err := strconv.Atoi(value)
			if err != nil {
				return SlotRecord{}, &SyntaxError{Line: line, Hint: "capacity must be an integer"}
			}
			rec.Capacity = n
		case strings.TrimSuffix(OwnerKey, ":"):
			rec.Owner = strings.TrimSpace(strings.TrimPrefix(value, "@"))
		default:
			return SlotRecord{}, &SyntaxError{Line: line, Hint: "unknown key '" + key + "'"}
		}
	}
	return rec, nil
}

// ParsePlayerLine parses a player line: an optional reserve marker, a row
// label of digits/periods/hashes (discarded), the player's name, and an
// optional trailing status marker. Lines whose name turns out empty (an
// unfilled numbered seat) return ok=false and are not an error.
func ParsePlayerLine(line string) (PlayerEntry, bool) {
	line = strings.TrimSpace(line)
	var entry PlayerEntry

	rest := line
	if strings.HasPrefix(rest, ReserveMarker) {
		entry.Reserve = true
		rest = rest[len(ReserveMarker):]
	}
	for len(rest) > 0 && isRowLabelByte(rest[0]) {
		rest = rest[1:]
	}

	// Mutually exclusive trailing markers, in priority order. The
	// pending-payment marker only affects payment display and is dropped.
	switch {
	case strings.HasSuffix(rest, PendingPaymentMarker):
		rest = rest[:len(rest)-len(PendingPaymentMarker)]
	case strings.HasSuffix(rest, PaidMarker):
		entry.Paid = true
		rest = rest[:len(rest)-len(PaidMarker)]
	case strings.HasSuffix(rest, PendingMarker):
		entry.Pending = true
		rest = rest[:len(rest)-len(PendingMarker)]
	}

	entry.Name = strings.TrimSpace(rest)
	if entry.Name == "" {
		return PlayerEntry{}, false
	}
	return entry, true
}

func isRowLabelByte(c byte) bool {
	switch {
	case c == ' ' || c == '\t':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '#':
		return true
	}
	return false
}
