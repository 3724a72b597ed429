package invite

import "errors"

var (
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteInvalid        = errors.New("invite code invalid or expired")
	ErrInviteExhausted      = errors.New("invite code has reached its maximum uses")
	ErrCodeGenerationFailed = errors.New("invite code generation failed")
	ErrInvalidInput         = errors.New("invalid input")
)
