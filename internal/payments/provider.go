package payments

import "context"

type Provider interface {
	Name() string

	// CreatePayment returns a checkout link and an invoice id for a slot
	// fee owed by the named player.
	CreatePayment(ctx context.Context, slotLabel, playerName, amount string, returnURL string) (payURL string, invoice string, err error)

	// HandleWebhook validates a provider callback and returns the slot
	// label, player name and status (paid/cancelled) it settles.
	HandleWebhook(ctx context.Context, body []byte, headers map[string]string) (slotLabel, playerName, status string, err error)
}
