package tgbot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"badminton-bot/internal/config"
	"badminton-bot/internal/payments"
	"badminton-bot/internal/registration"
	"badminton-bot/internal/sheets"
)

// App is the Telegram front end. It owns the live roster store and
// serializes every mutation behind a mutex; the registration core itself
// assumes a single writer.
type App struct {
	cfg config.Config
	bot *tgbotapi.BotAPI
	log *slog.Logger
	sh  *sheets.Client
	pay payments.Provider

	mu      sync.Mutex
	store   *registration.Store
	applier registration.Applier
	aliases map[string]string
}

func New(cfg config.Config, log *slog.Logger, sh *sheets.Client, pay payments.Provider) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &App{
		cfg: cfg,
		bot: b,
		log: log,
		sh:  sh,
		pay: pay,
		store: registration.NewStore(),
		applier: registration.Applier{
			MaxPlayersPerSlot: cfg.MaxPlayersPerSlot,
			SlotExtraCost:     cfg.SlotExtraCost,
		},
		aliases: map[string]string{},
	}, nil
}

// Bootstrap loads the alias table and the persisted roster snapshot and
// re-applies the snapshot through the list pipeline.
func (a *App) Bootstrap(ctx context.Context) error {
	aliases, err := a.sh.ListAliases()
	if err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}
	text, err := a.sh.LoadRoster()
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.aliases = aliases
	if strings.TrimSpace(text) == "" {
		return nil
	}
	st := registration.NewStore()
	if _, err := a.applier.Apply(systemUser, text, st); err != nil {
		return fmt.Errorf("re-apply roster snapshot: %w", err)
	}
	a.store = st
	a.log.Info("roster snapshot restored", "slots", len(st.CollectAll()))
	return nil
}

// systemUser acts for mutations the bot performs on its own (snapshot
// restore, payment webhooks).
var systemUser = registration.User{Username: "system", IsAdmin: true}

func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message == nil {
				continue
			}
			if err := a.handleMessage(ctx, upd.Message); err != nil {
				a.log.Error("handle message", "error", err)
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) isAdmin(username string) bool {
	return a.cfg.AdminUsernames[username]
}

func (a *App) userFrom(m *tgbotapi.Message) registration.User {
	username := m.From.UserName
	if username == "" {
		username = strconv.FormatInt(m.From.ID, 10)
	}
	a.mu.Lock()
	alias := a.aliases[username]
	a.mu.Unlock()
	return registration.User{
		Username: username,
		Alias:    alias,
		IsAdmin:  a.isAdmin(username),
	}
}

// ---------- Message handling ----------

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	if !m.IsCommand() {
		return nil
	}
	user := a.userFrom(m)
	args := strings.TrimSpace(m.CommandArguments())
	chatID := m.Chat.ID

	switch m.Command() {
	case "start", "help":
		return a.SendText(chatID, helpText)
	case "new":
		return a.handleNew(chatID, user, args)
	case "rg":
		return a.handleRegister(chatID, user, args, false)
	case "rs":
		return a.handleRegister(chatID, user, args, true)
	case "all":
		return a.handleAll(chatID)
	case "av":
		return a.handleAvailable(chatID)
	case "aka":
		return a.handleAlias(chatID, user, args)
	case "allpending":
		return a.handleAllPending(chatID, user)
	case "paid":
		return a.handlePayment(chatID, user, args, true)
	case "unpaid":
		return a.handlePayment(chatID, user, args, false)
	case "pay":
		return a.handlePay(ctx, chatID, user, args)
	default:
		return nil
	}
}

// handleNew replaces the whole roster with the pasted list. The list is
// applied to a fresh store and swapped in only when every line applies, so
// a bad paste never half-replaces the live roster.
func (a *App) handleNew(chatID int64, user registration.User, args string) error {
	if !user.IsAdmin {
		return a.SendText(chatID, "Only admins can replace the list.")
	}

	a.mu.Lock()
	st := registration.NewStore()
	processed, err := a.applier.Apply(user, args, st)
	if err != nil {
		a.mu.Unlock()
		return a.SendText(chatID, err.Error())
	}
	if !processed {
		a.mu.Unlock()
		return a.SendText(chatID, "Nothing to process. Paste the list after /new.")
	}
	a.store = st
	text := a.persistLocked()
	a.mu.Unlock()

	return a.SendText(chatID, text)
}

func (a *App) handleRegister(chatID int64, user registration.User, args string, reserve bool) error {
	names, label, err := parseNamesAndSlot(args)
	if err != nil {
		return a.SendText(chatID, err.Error())
	}

	a.mu.Lock()
	for _, name := range names {
		if reserve {
			err = a.store.ReservePlayer(label, name)
		} else {
			err = a.store.RegisterPlayer(label, name)
		}
		if err != nil {
			break
		}
	}
	var text string
	if err == nil {
		text = a.persistLocked()
	}
	a.mu.Unlock()

	if err != nil {
		return a.SendText(chatID, err.Error())
	}
	return a.SendText(chatID, text)
}

func (a *App) handleAll(chatID int64) error {
	a.mu.Lock()
	text := a.store.Render()
	a.mu.Unlock()
	if text == "" {
		return a.SendText(chatID, "The list is empty.")
	}
	return a.SendText(chatID, text)
}

func (a *App) handleAvailable(chatID int64) error {
	a.mu.Lock()
	text := a.store.RenderAvailable()
	a.mu.Unlock()
	if text == "" {
		return a.SendText(chatID, "No slots available.")
	}
	return a.SendText(chatID, text)
}

func (a *App) handleAlias(chatID int64, user registration.User, args string) error {
	if args == "" {
		if user.Alias == "" {
			return a.SendText(chatID, "You have no alias yet. Use /aka <your new alias>.")
		}
		return a.SendText(chatID, "Your alias is "+user.Alias+".")
	}

	alias := strings.TrimSpace(args)
	if err := a.sh.SetAlias(user.Username, alias); err != nil {
		a.log.Error("save alias", "user", user.Username, "error", err)
		return a.SendText(chatID, "Could not save your alias, try again later.")
	}
	a.mu.Lock()
	a.aliases[user.Username] = alias
	a.mu.Unlock()
	return a.SendText(chatID, "Your alias is now "+alias+".")
}

func (a *App) handleAllPending(chatID int64, user registration.User) error {
	if !user.IsAdmin {
		return a.SendText(chatID, "Only admins can move reserves to pending.")
	}

	a.mu.Lock()
	a.store.MoveAllReservesToPending()
	text := a.persistLocked()
	a.mu.Unlock()

	if err := a.SendText(chatID, "All reserve members have been changed to (pending)."); err != nil {
		return err
	}
	return a.SendText(chatID, text)
}

func (a *App) handlePayment(chatID int64, user registration.User, args string, confirm bool) error {
	names, label, err := parseNamesAndSlot(args)
	if err != nil {
		return a.SendText(chatID, err.Error())
	}

	a.mu.Lock()
	slot := a.store.GetSlot(label)
	if slot == nil {
		a.mu.Unlock()
		return a.SendText(chatID, fmt.Sprintf("%v: %s", registration.ErrSlotNotFound, label))
	}
	var changed []string
	for _, name := range names {
		var ok bool
		if confirm {
			ok, err = slot.ConfirmPayment(name, user)
		} else {
			ok, err = slot.UnconfirmPayment(name, user)
		}
		if err != nil {
			break
		}
		if ok {
			changed = append(changed, name)
		}
	}
	var text string
	if err == nil && len(changed) > 0 {
		a.persistLocked()
	}
	if err == nil {
		text = slot.Render()
	}
	a.mu.Unlock()

	if err != nil {
		return a.SendText(chatID, err.Error())
	}
	return a.SendText(chatID, text)
}

func (a *App) handlePay(ctx context.Context, chatID int64, user registration.User, args string) error {
	label := strings.TrimSpace(args)
	if label == "" {
		return a.SendText(chatID, "Use /pay <slot>.")
	}

	a.mu.Lock()
	slot := a.store.GetSlot(label)
	a.mu.Unlock()
	if slot == nil {
		return a.SendText(chatID, fmt.Sprintf("%v: %s", registration.ErrSlotNotFound, label))
	}
	if slot.ExtraCost() <= 0 {
		return a.SendText(chatID, "This slot has no extra cost.")
	}

	payer := user.Alias
	if payer == "" {
		payer = user.Username
	}
	payURL, _, err := a.pay.CreatePayment(ctx, label, payer, strconv.Itoa(slot.ExtraCost()), "")
	if err != nil {
		a.log.Error("create payment", "slot", label, "error", err)
		return a.SendText(chatID, "Could not create a payment link, try again later.")
	}
	return a.SendText(chatID, fmt.Sprintf("Pay %d for slot [%s] here:\n%s\nThe bot will confirm your payment automatically.", slot.ExtraCost(), label, payURL))
}

// ---------- Webhook / export surface ----------

// RosterText returns the current rendered roster. Used by the HTTP export.
func (a *App) RosterText() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Render()
}

// ConfirmPaymentFromWebhook marks a settled invoice as paid. The webhook
// acts as the system user, which passes the owner/admin check.
func (a *App) ConfirmPaymentFromWebhook(label, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot := a.store.GetSlot(label)
	if slot == nil {
		return fmt.Errorf("%w: %s", registration.ErrSlotNotFound, label)
	}
	ok, err := slot.ConfirmPayment(name, systemUser)
	if err != nil {
		return err
	}
	if ok {
		a.persistLocked()
	}
	return nil
}

// persistLocked saves the rendered roster to the spreadsheet and returns
// the rendered text. Persistence failures are logged, not fatal: the
// in-memory roster stays authoritative until the next successful save.
// Callers hold a.mu.
func (a *App) persistLocked() string {
	text := a.store.Render()
	if err := a.sh.SaveRoster(text); err != nil {
		a.log.Error("save roster snapshot", "error", err)
	}
	return text
}

const helpText = `Please use the following syntaxes:
1. To register into a slot: /rg <name 1>, ..., <name n> <slot>
2. To reserve a slot: /rs <name 1>, ..., <name n> <slot>
3. To show the full list: /all
4. To show available slots: /av
5. To set your alias: /aka <your new alias>
6. To view your alias: /aka
7. (admin) To replace the whole list: /new <list>
8. (admin) To move all reserves to pending: /allpending
9. (owner/admin) To confirm payments: /paid <name 1>, ..., <name n> <slot>
10. (owner/admin) To revert payments: /unpaid <name 1>, ..., <name n> <slot>
11. To get a payment link for a paid slot: /pay <slot>

For /rg, if the list is full the player(s) are put into the reserve list
WITH the tag (pending): they WILL be moved into the main player list
automatically when somebody deregisters, first-come first-served.

For /rs, the player(s) are put into the reserve list WITHOUT the tag
(pending): they will NOT be moved into the main player list
automatically. Only an admin can move them there if necessary.`
