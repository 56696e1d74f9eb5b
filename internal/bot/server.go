// Package bot speaks the Telegram Bot HTTP API directly over net/http (no
// SDK import exists anywhere in the example pack for this) and turns
// incoming chat commands into password.Generate/Verify calls.
package bot

import (
	"net/http"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/config"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
)

// Server receives Telegram webhook deliveries, dispatches their command
// text, and replies through Client. Its route table mirrors the teacher's
// httpapi.Server: a ServeMux wrapped by a small middleware chain.
type Server struct {
	cfg    config.Config
	store  store.Store
	clock  clock.Clock
	client *Client
	mux    *http.ServeMux
}

func NewServer(cfg config.Config, st store.Store, clk clock.Clock) *Server {
	s := &Server{
		cfg:    cfg,
		store:  st,
		clock:  clk,
		client: NewClient(cfg.BotToken),
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = recoverMiddleware(h)
	h = requestIDMiddleware(h)
	h = loggingMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/webhook", s.handleWebhook)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
