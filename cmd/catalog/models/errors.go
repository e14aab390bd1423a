package models

import "errors"

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalid is returned when a request is well-formed but semantically
// unacceptable
var ErrInvalid = errors.New("invalid input")
