package identity

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)
