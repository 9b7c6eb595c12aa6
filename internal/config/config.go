package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramToken string

	SpreadsheetID            string
	GoogleServiceAccountJSON string

	AdminUsernames map[string]bool

	MaxPlayersPerSlot int
	SlotExtraCost     int

	PaymentProvider      string
	PaymentWebhookSecret string

	HTTPAddr      string
	BasePublicURL string
}

func FromEnv() (Config, error) {
	var c Config
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	c.MaxPlayersPerSlot = intFromEnv("MAX_PLAYERS_PER_SLOT", 20)
	if c.MaxPlayersPerSlot <= 0 {
		return c, fmt.Errorf("MAX_PLAYERS_PER_SLOT must be positive")
	}
	c.SlotExtraCost = intFromEnv("SLOT_EXTRA_COST", 0)

	c.PaymentProvider = strings.TrimSpace(os.Getenv("PAYMENT_PROVIDER"))
	if c.PaymentProvider == "" {
		c.PaymentProvider = "stub"
	}
	c.PaymentWebhookSecret = strings.TrimSpace(os.Getenv("PAYMENT_WEBHOOK_SECRET"))
	if c.PaymentWebhookSecret == "" {
		c.PaymentWebhookSecret = "change-me"
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.BasePublicURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_PUBLIC_URL")), "/")

	if c.TelegramToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
	}
	if c.SpreadsheetID == "" {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
	}
	if c.GoogleServiceAccountJSON == "" {
		return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
	}

	c.AdminUsernames = parseAdminUsernames(os.Getenv("ADMIN_USERNAMES"))

	return c, nil
}

func parseAdminUsernames(raw string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimPrefix(strings.TrimSpace(p), "@")
		if p == "" {
			continue
		}
		m[p] = true
	}
	return m
}

func intFromEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
