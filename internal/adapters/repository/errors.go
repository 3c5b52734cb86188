package repository

import "errors"

// Sentinel kinds for swing-history errors.
var (
	ErrNotFound     = errors.New("swing not found")
	ErrNoSwings     = errors.New("no swings recorded")
	ErrMissingID    = errors.New("swing has no id")
	ErrDuplicateID  = errors.New("swing id already recorded")
	ErrInvalidLimit = errors.New("invalid history limit")
)
