package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrTimeout is returned when a remote operation doesn't reach a terminal
	// state within the polling budget. This is a client-side error, distinct
	// from a remote-reported failed status.
	ErrTimeout = errors.New("timed out")
)
