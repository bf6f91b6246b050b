package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotFound   = errors.New("snapshot not found")
	ErrAlreadySet = errors.New("snapshot already set")
)
