package entity

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrActiveRunExists   = errors.New("active run exists")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUnresolvedScope   = errors.New("unresolved scope")
)
