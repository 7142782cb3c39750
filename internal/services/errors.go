package services

import "errors"

// Sentinel errors returned by the domain services. Handlers translate these
// into HTTP statuses; anything else surfaces as a generic 500.
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrRecordNotFound      = errors.New("record not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrPasswordMismatch    = errors.New("password mismatch")
	ErrNicknameTaken       = errors.New("nickname already taken in this group")
	ErrAlreadyRecommended  = errors.New("group already recommended by this user")
	ErrNotRecommended      = errors.New("group not recommended by this user")
)
