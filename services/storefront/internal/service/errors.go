package service

import "errors"

var (
	ErrUnauthenticated    = errors.New("not logged in")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrConflict           = errors.New("email already registered")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorage            = errors.New("storage failure")
)
