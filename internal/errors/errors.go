package errors

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

// Booking failure taxonomy. All of these are recoverable by the caller
// and map to 4xx responses; anything else is an internal failure.
var (
	ErrOfferingNotFound    = errors.New("offering not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotAvailable        = errors.New("offering is not accepting bookings")
	ErrFull                = errors.New("offering is fully booked")
	ErrNotPending          = errors.New("reservation is not pending")
	ErrCodeRetryExhausted  = errors.New("could not allocate a unique booking code")
)

// ErrDuplicateBooking is the common ancestor of both duplicate
// sub-cases so callers can match the family or the exact one.
var ErrDuplicateBooking = errors.New("duplicate booking")

var (
	ErrAlreadyPending  = fmt.Errorf("%w: payment already pending", ErrDuplicateBooking)
	ErrAlreadyApproved = fmt.Errorf("%w: already booked", ErrDuplicateBooking)
)
