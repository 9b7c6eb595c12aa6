package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"badminton-bot/internal/config"
	"badminton-bot/internal/payments"
	"badminton-bot/internal/tgbot"
	"badminton-bot/internal/util"
)

// exportScope keys the HMAC token guarding the roster export link.
const exportScope = "export:roster"

// ExportToken returns the token expected by /export/roster.txt.
func ExportToken(cfg config.Config) string {
	return util.HMACSHA256Hex(cfg.PaymentWebhookSecret, exportScope)
}

func New(cfg config.Config, log *slog.Logger, pay payments.Provider, bot *tgbot.App) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "ts": util.NowISO()})
	})

	// Stub payment page (for testing)
	mux.HandleFunc("/pay/stub", func(w http.ResponseWriter, r *http.Request) {
		invoice := r.URL.Query().Get("invoice")
		if invoice == "" {
			http.Error(w, "invoice required", http.StatusBadRequest)
			return
		}
		// Simple HTML page whose buttons trigger the webhook. A real
		// provider hosts its own checkout.
		html := `<!doctype html><html><head><meta charset="utf-8"><title>Stub Pay</title></head><body>
<h2>Payment (stub provider)</h2>
<p>Invoice: ` + invoice + `</p>
<button onclick="send('paid')">Pay</button>
<button onclick="send('cancelled')">Cancel</button>
<pre id="out"></pre>
<script>
async function send(status){
  const body = JSON.stringify({invoice: "` + invoice + `", status});
  const res = await fetch("/webhooks/stub", {method:"POST", headers: {"Content-Type":"application/json"}, body});
  document.getElementById("out").textContent = await res.text();
}
</script>
</body></html>`
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	})

	// Payment webhooks
	mux.HandleFunc("/webhooks/stub", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		headers := map[string]string{}
		for k, v := range r.Header {
			if len(v) > 0 {
				headers[strings.ToLower(k)] = v[0]
			}
		}

		// DEV: the stub page cannot sign its request; recompute the
		// signature server-side when running locally.
		if headers["x-signature"] == "" && (cfg.BasePublicURL == "" || strings.Contains(cfg.BasePublicURL, "localhost")) {
			headers["x-signature"] = util.HMACSHA256Hex(cfg.PaymentWebhookSecret, string(body))
		}

		label, player, status, err := pay.HandleWebhook(r.Context(), body, headers)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if status == "paid" {
			if err := bot.ConfirmPaymentFromWebhook(label, player); err != nil {
				log.Error("confirm webhook payment", "slot", label, "player", player, "error", err)
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"slot":   label,
			"player": player,
			"status": status,
			"ts":     util.NowISO(),
		})
	})

	// Plain-text roster export (admin-only link with HMAC token)
	mux.HandleFunc("/export/roster.txt", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "token required", http.StatusBadRequest)
			return
		}
		if token != ExportToken(cfg) {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="roster.txt"`)
		_, _ = w.Write([]byte(bot.RosterText()))
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}
