package sheets

import (
	"fmt"
	"strings"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"badminton-bot/internal/util"
)

const (
	SheetRoster  = "Roster"
	SheetAliases = "Aliases"
)

func (c *Client) readAll(sheet string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:Z").Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(sheet string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	return err
}

func (c *Client) updateCell(sheet, a1 string, value interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!"+a1, vr).
		ValueInputOption("RAW").
		Do()
	return err
}

// ---------- Roster snapshot ----------

// The whole roster text lives in Roster!A1; A2 holds the save timestamp.
// The bot overwrites it after every successful mutation and re-applies it
// through the list pipeline at startup.

func (c *Client) LoadRoster() (string, error) {
	values, err := c.readAll(SheetRoster)
	if err != nil {
		return "", err
	}
	if len(values) == 0 || len(values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(values[0][0]), nil
}

func (c *Client) SaveRoster(text string) error {
	if err := c.updateCell(SheetRoster, "A1", text); err != nil {
		return err
	}
	return c.updateCell(SheetRoster, "A2", util.NowISO())
}

// ---------- Aliases ----------

// ListAliases returns the username→alias table. Header row at index 0.
func (c *Client) ListAliases() (map[string]string, error) {
	values, err := c.readAll(SheetAliases)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	for i := 1; i < len(values); i++ {
		row := values[i]
		username := strings.TrimSpace(get(row, 0))
		alias := strings.TrimSpace(get(row, 1))
		if username == "" || alias == "" {
			continue
		}
		out[username] = alias
	}
	return out, nil
}

// SetAlias updates the alias for username, appending a row when the user
// has none yet.
func (c *Client) SetAlias(username, alias string) error {
	values, err := c.readAll(SheetAliases)
	if err != nil {
		return err
	}
	for i := 1; i < len(values); i++ {
		if get(values[i], 0) == username {
			a1 := fmt.Sprintf("B%d", i+1) // sheet rows are 1-indexed
			return c.updateCell(SheetAliases, a1, alias)
		}
	}
	return c.appendRow(SheetAliases, []interface{}{username, alias, util.NowISO()})
}

// ---------- helpers ----------

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
