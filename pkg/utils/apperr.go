package utils

import "errors"

// Sentinel errors returned by services. Handlers map these to HTTP status
// codes with errors.Is, so service failures stay typed end to end.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidSlot       = errors.New("requested time is not a valid slot")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrAlreadyTerminal   = errors.New("appointment is already completed or cancelled")
	ErrNotOwner          = errors.New("appointment belongs to another doctor")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDoctorNotApproved = errors.New("doctor is not approved for bookings")
)
