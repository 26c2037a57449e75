package storage

import "errors"

var (
	// ErrNotFound is returned when a transcript does not exist or is
	// not visible to the requesting profile.
	ErrNotFound = errors.New("transcript not found")

	// ErrConflict is returned when saving a transcript whose ID
	// already exists.
	ErrConflict = errors.New("transcript already exists")
)
