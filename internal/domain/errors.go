package domain

import "errors"

// Sentinel errors for the carpool core. Services wrap these with
// fmt.Errorf("%w: ...") so callers can match with errors.Is while still
// getting a message fit for display.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPermission      = errors.New("permission denied")
	ErrState           = errors.New("invalid state for operation")
	ErrConflict        = errors.New("conflicting active request")
	ErrCapacity        = errors.New("ride is full")
	ErrEligibility     = errors.New("no qualifying ride history")
	ErrSelfRating      = errors.New("members cannot rate themselves")
	ErrDuplicateRating = errors.New("rating already submitted for this ride")
)
