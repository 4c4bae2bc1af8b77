package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/services/storefront/internal/service"
)

type Accounts interface {
	Signup(ctx context.Context, in service.SignupInput) error
	Login(ctx context.Context, email, password string) (service.Identity, error)
}

type AuthHandler struct {
	Accounts Accounts
	Sessions Sessions
	Log      zerolog.Logger
}

// Signup godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   x-www-form-urlencoded
// @Param    fullname  formData  string  true  "Full name"
// @Param    email     formData  string  true  "Email"
// @Param    password  formData  string  true  "Password"
// @Param    confirm   formData  string  true  "Password again"
// @Success  303
// @Router   /signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := h.Sessions.Load(r)

	err := h.Accounts.Signup(r.Context(), service.SignupInput{
		FullName: r.PostForm.Get("fullname"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
		Confirm:  r.PostForm.Get("confirm"),
	})
	switch {
	case errors.Is(err, service.ErrEmailRequired):
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashError, "Email is required.", "/signup")
	case errors.Is(err, service.ErrPasswordMismatch):
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashError, "Passwords do not match.", "/signup")
	case errors.Is(err, service.ErrConflict):
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashError, "Email already registered", "/signup")
	case err != nil:
		h.Log.Error().Err(err).Msg("signup failed")
		http.Error(w, "signup failed", http.StatusInternalServerError)
	default:
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashSuccess, "Signup successful. Please login.", "/login")
	}
}

// Login godoc
// @Summary  Log in
// @Tags     auth
// @Accept   x-www-form-urlencoded
// @Param    username  formData  string  true  "Email"
// @Param    password  formData  string  true  "Password"
// @Success  303
// @Router   /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := h.Sessions.Load(r)

	who, err := h.Accounts.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashError, "Invalid credentials", "/login")
		return
	case err != nil:
		h.Log.Error().Err(err).Msg("login failed")
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	h.Sessions.Rotate(r.Context(), sess)
	sess.Email = who.Email
	sess.AddFlash(flashSuccess, "Login successful")
	if err := h.Sessions.Save(r.Context(), w, sess); err != nil {
		h.Log.Error().Err(err).Str("email", who.Email).Msg("session save failed")
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Load(r)
	h.Sessions.Clear(sess)
	redirectWithFlash(w, r, h.Sessions, sess, h.Log, flashInfo, "You have been logged out.", "/")
}
