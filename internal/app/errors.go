package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("no such session")
)
