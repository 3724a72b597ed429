package roster

import "errors"

var (
	ErrEntryNotFound  = errors.New("roster entry not found")
	ErrDuplicateEntry = errors.New("user already on this roster")
	ErrInvalidKind    = errors.New("unknown roster kind")
	ErrInvalidInput   = errors.New("invalid input")
)
