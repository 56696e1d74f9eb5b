// Package adminapi exposes a small JWT-protected HTTP surface operators use
// to review and revoke issued passwords outside the chat bot, grounded on
// the teacher's httpapi auth/JWT/middleware trio but scoped to this domain's
// one entity, PersistedRecord, instead of users/agents/tasks.
package adminapi

import (
	"crypto/rand"
	"net/http"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/operators"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
)

type Server struct {
	store      store.Store
	roster     operators.Roster
	signingKey []byte
	mux        *http.ServeMux
}

// NewServer builds an admin API server. signingKeySecret, if empty, causes
// a random per-process signing key to be generated, same fallback the
// teacher's initJWTKey uses.
func NewServer(st store.Store, roster operators.Roster, signingKeySecret string) *Server {
	key := []byte(signingKeySecret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("adminapi: failed to generate signing key: " + err.Error())
		}
	}

	s := &Server{
		store:      st,
		roster:     roster,
		signingKey: key,
		mux:        http.NewServeMux(),
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
	s.mux.HandleFunc("/admin/health", s.handleHealth)
	s.mux.HandleFunc("/admin/login", s.handleLogin)
	s.mux.Handle("/admin/records", s.authMiddleware(http.HandlerFunc(s.handleRecords)))
	s.mux.Handle("/admin/records/revoke", s.authMiddleware(http.HandlerFunc(s.handleRevoke)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
