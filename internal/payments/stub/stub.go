package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"badminton-bot/internal/util"
)

// Stub provider:
// - CreatePayment: generates a link to /pay/stub?invoice=...
// - Webhook: POST /webhooks/stub signed with X-Signature (HMAC SHA-256)

type Provider struct {
	secret  string
	baseURL string
}

func New(secret, baseURL string) *Provider {
	return &Provider{secret: secret, baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) CreatePayment(ctx context.Context, slotLabel, playerName, amount string, returnURL string) (string, string, error) {
	invoice := fmt.Sprintf("%s:%s:%s", slotLabel, playerName, util.NowISO())

	url := "/pay/stub?invoice=" + invoice
	if p.baseURL != "" {
		url = p.baseURL + url
	}
	return url, invoice, nil
}

type webhookPayload struct {
	Invoice string `json:"invoice"`
	Status  string `json:"status"` // paid/cancelled
}

func (p *Provider) HandleWebhook(ctx context.Context, body []byte, headers map[string]string) (slotLabel, playerName, status string, err error) {
	sig := headers["x-signature"]
	expected := util.HMACSHA256Hex(p.secret, string(body))
	if sig == "" || sig != expected {
		return "", "", "", fmt.Errorf("invalid signature")
	}

	var pl webhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return "", "", "", err
	}

	parts := strings.SplitN(pl.Invoice, ":", 3)
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("bad invoice")
	}
	slotLabel = parts[0]
	playerName = parts[1]

	status = strings.TrimSpace(pl.Status)
	if status == "" {
		status = "paid"
	}
	return slotLabel, playerName, status, nil
}
