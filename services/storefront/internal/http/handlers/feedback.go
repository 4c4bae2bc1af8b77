package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Feedback is recorded in the log only.
type Feedback struct {
	Log zerolog.Logger
}

func (h *Feedback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	h.Log.Info().
		Str("name", r.PostForm.Get("name")).
		Str("email", r.PostForm.Get("email")).
		Str("message", r.PostForm.Get("message")).
		Msg("feedback received")
	http.Redirect(w, r, "/thanku", http.StatusSeeOther)
}
