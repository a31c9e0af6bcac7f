package usecase

import "errors"

// Typed failures surfaced by the reservation core. Handlers map these to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound covers unknown IDs of any kind.
	ErrNotFound = errors.New("not found")

	// ErrRouteNotFound means the trip has no contiguous segment run
	// between the requested source and destination.
	ErrRouteNotFound = errors.New("no route between requested cities")

	// ErrInsufficientSeats means the bottleneck leg cannot cover the
	// requested seats.
	ErrInsufficientSeats = errors.New("insufficient seats available")

	// ErrLockBusy means another reservation holds the trip lock; the
	// attempt fails immediately rather than queuing.
	ErrLockBusy = errors.New("trip is currently being booked")

	// ErrReservationConflict means a segment decrement failed mid
	// reservation; all prior decrements were rolled back.
	ErrReservationConflict = errors.New("reservation conflict")

	// ErrInvalidBookingState means a transition was requested from a
	// terminal or wrong state.
	ErrInvalidBookingState = errors.New("booking is not in a valid state for this operation")
)
