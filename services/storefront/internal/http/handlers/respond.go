package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/services/storefront/internal/session"
)

const (
	flashSuccess = "success"
	flashError   = "error"
	flashInfo    = "info"
)

// Sessions is the part of session.Manager the handlers use.
type Sessions interface {
	Load(r *http.Request) *session.Session
	Save(ctx context.Context, w http.ResponseWriter, s *session.Session) error
	Rotate(ctx context.Context, s *session.Session)
	Clear(s *session.Session)
}

// redirectWithFlash queues a flash and sends the client to target with 303.
// A failed save only loses the flash.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions Sessions, s *session.Session, log zerolog.Logger, category, message, target string) {
	s.AddFlash(category, message)
	if err := sessions.Save(r.Context(), w, s); err != nil {
		log.Warn().Err(err).Str("target", target).Msg("session save failed, flash dropped")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
