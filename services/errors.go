package services

import "errors"

// Error taxonomy surfaced by the booking core. Controllers map these to
// HTTP statuses: validation -> 400, conflicts -> 409, not found -> 404.
var (
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrRoomInactive     = errors.New("room_inactive")
	ErrRoomHasBookings  = errors.New("room_has_bookings")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrCheckInPast      = errors.New("check_in_in_past")
	ErrCapacityExceeded = errors.New("capacity_exceeded")

	// DatesUnavailable: the advisory availability read before creating a
	// PENDING booking found a conflict. DatesNoLongerAvailable: the
	// authoritative unique-index check inside Confirm lost the race.
	ErrDatesUnavailable       = errors.New("dates_unavailable")
	ErrDatesNoLongerAvailable = errors.New("dates_no_longer_available")

	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrAlreadyConfirmed = errors.New("booking_already_confirmed")
	ErrAlreadyCancelled = errors.New("booking_already_cancelled")

	ErrPaymentOrderMismatch = errors.New("payment_order_mismatch")
)
