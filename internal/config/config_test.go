package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "sa.json")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 20, c.MaxPlayersPerSlot)
	assert.Equal(t, 0, c.SlotExtraCost)
	assert.Equal(t, "stub", c.PaymentProvider)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Empty(t, c.AdminUsernames)
}

func TestFromEnv_MissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_AdminUsernames(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_USERNAMES", "@alice, bob ,,@carol")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"alice": true, "bob": true, "carol": true}, c.AdminUsernames)
}

func TestFromEnv_Limits(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_PLAYERS_PER_SLOT", "7")
	t.Setenv("SLOT_EXTRA_COST", "3")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7, c.MaxPlayersPerSlot)
	assert.Equal(t, 3, c.SlotExtraCost)

	t.Setenv("MAX_PLAYERS_PER_SLOT", "0")
	_, err = FromEnv()
	assert.Error(t, err)
}
