// Package registration implements the roster core: parsing pasted
// registration lists into per-slot player rosters and maintaining the
// main/pending/reserve lists for each slot.
package registration

// Textual markers recognized in registration lists. These must match the
// list format exactly; rendered output uses the same markers so a rendered
// roster parses back.
const (
	DateVenueMarker      = "[dv]"
	DateVenueShortMarker = "dv"
	NumPlayersKey        = "#players:"
	OwnerKey             = "owner:"
	ReserveMarker        = "reserve"
	PendingMarker        = "(pending)"
	PaidMarker           = "(paid)"
	PendingPaymentMarker = "(pending payment)"
	IndentSpace          = "   "
)
