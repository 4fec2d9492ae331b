package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every service error wraps exactly one of the six base
// sentinels so the transport layer can map it to a response code with a
// single errors.Is walk.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("invalid input")
)

var (
	ErrJobClosed            = fmt.Errorf("%w: job is closed", ErrInvalidState)
	ErrSlotsFull            = fmt.Errorf("%w: all slots are taken", ErrConflict)
	ErrProfileMissing       = fmt.Errorf("%w: profile not set up", ErrInvalidState)
	ErrDuplicateApplication = fmt.Errorf("%w: already applied to this job", ErrConflict)
	ErrAlreadyDecided       = fmt.Errorf("%w: application already decided", ErrInvalidState)
	ErrJobStillOpen         = fmt.Errorf("%w: close the job before deleting it", ErrInvalidState)
	ErrUploadRejected       = fmt.Errorf("%w: upload rejected", ErrValidation)
	ErrEmailTaken           = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrBadCredentials       = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrTokenInvalid         = fmt.Errorf("%w: token invalid or expired", ErrUnauthorized)
)
