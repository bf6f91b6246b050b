package graphql

import "errors"

// Sentinel kinds for upstream errors.
var (
	ErrSignInFailed = errors.New("signin rejected")
	ErrNoToken      = errors.New("no token in signin response")
	ErrUpstream     = errors.New("upstream query failed")
)
