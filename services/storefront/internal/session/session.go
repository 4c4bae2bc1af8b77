// Package session keeps the per-client login marker and flash messages. The
// browser only holds an opaque id cookie; data lives in a Store.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("session not found")

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Data struct {
	Email   string  `json:"email,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

type Store interface {
	Get(ctx context.Context, id string) (Data, error)
	Save(ctx context.Context, id string, d Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type Session struct {
	ID string
	Data
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns pending flashes and clears them.
func (s *Session) PopFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

type Manager struct {
	Store  Store
	Cookie string
	TTL    time.Duration
	Secure bool
	Log    zerolog.Logger
}

// Load never fails: a missing, expired or unreadable session yields a fresh anonymous one.
func (m *Manager) Load(r *http.Request) *Session {
	c, err := r.Cookie(m.Cookie)
	if err != nil || c.Value == "" {
		return &Session{ID: uuid.NewString()}
	}
	d, err := m.Store.Get(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.Log.Warn().Err(err).Msg("session load failed")
		}
		return &Session{ID: uuid.NewString()}
	}
	return &Session{ID: c.Value, Data: d}
}

func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.Store.Save(ctx, s.ID, s.Data, m.TTL); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.Cookie,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(m.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Rotate moves the session to a new id; called on login.
func (m *Manager) Rotate(ctx context.Context, s *Session) {
	if err := m.Store.Delete(ctx, s.ID); err != nil {
		m.Log.Warn().Err(err).Msg("session delete failed")
	}
	s.ID = uuid.NewString()
}

// Clear drops identity and flashes but keeps the id so a follow-up flash survives.
func (m *Manager) Clear(s *Session) {
	s.Data = Data{}
}
