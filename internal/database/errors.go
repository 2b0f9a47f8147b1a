package database

import "errors"

var (
	// ErrNotFound is returned when a record identifier does not resolve.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a registration collides with an
	// existing account.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrTitleConflict is returned when a post title is already taken.
	ErrTitleConflict = errors.New("post title already taken")
)
