package church

import "errors"

var (
	ErrChurchNotFound     = errors.New("church not found")
	ErrCampusNotFound     = errors.New("campus not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyInChurch    = errors.New("already a member of a church")
	ErrLastOwner          = errors.New("church must retain at least one owner")
	ErrCannotRemoveOwner  = errors.New("cannot remove an owner")
	ErrCannotRemoveSelf   = errors.New("cannot remove yourself")
	ErrOwnerCannotLeave   = errors.New("owner must transfer ownership or delete the church")
	ErrCampusMismatch     = errors.New("campus belongs to a different church")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
)
