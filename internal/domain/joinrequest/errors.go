package joinrequest

import "errors"

var (
	ErrRequestNotFound  = errors.New("join request not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAlreadyMember    = errors.New("already a member of this church")
	ErrAlreadyPending   = errors.New("a pending request for this church already exists")
	ErrDenialCooldown   = errors.New("too many recent denials for this church")
	ErrRateLimited      = errors.New("too many join requests this week")
	ErrReasonRequired   = errors.New("a denial reason is required")
	ErrAnswerRequired   = errors.New("a required question was not answered")
	ErrRequestClosed    = errors.New("join request already reviewed")
	ErrInvalidStatus    = errors.New("invalid status filter")
	ErrInvalidInput     = errors.New("invalid input")
)
