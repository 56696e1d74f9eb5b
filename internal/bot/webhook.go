package bot

import (
	"encoding/json"
	"log"
	"net/http"
)

const webhookSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// handleWebhook accepts one Telegram Update per delivery, same shape
// Telegram posts to a registered webhook URL. A configured secret is
// checked against webhookSecretHeader before the body is even decoded.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	if s.cfg.WebhookSecret != "" && r.Header.Get(webhookSecretHeader) != s.cfg.WebhookSecret {
		writeError(w, http.StatusUnauthorized, "unauthorized", "bad webhook secret")
		return
	}

	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed update")
		return
	}

	if upd.Message == nil || upd.Message.Text == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	reply := s.handleCommand(r.Context(), upd.Message)
	if err := s.client.SendMessage(r.Context(), upd.Message.Chat.ID, reply); err != nil {
		log.Printf("bot: failed to send reply: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
