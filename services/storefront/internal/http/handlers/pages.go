package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/services/storefront/internal/session"
)

type pageResp struct {
	Page    string          `json:"page"`
	User    string          `json:"user,omitempty"`
	Flashes []session.Flash `json:"flashes"`
}

// Page serves the view model a template would get: page name, logged-in user
// and the flashes, which are consumed by this read.
func Page(name string, sessions Sessions, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Load(r)
		flashes := sess.PopFlashes()
		if len(flashes) > 0 {
			if err := sessions.Save(r.Context(), w, sess); err != nil {
				log.Warn().Err(err).Str("page", name).Msg("session save failed")
			}
		}
		if flashes == nil {
			flashes = []session.Flash{}
		}
		writeJSON(w, http.StatusOK, pageResp{Page: name, User: sess.Email, Flashes: flashes})
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
