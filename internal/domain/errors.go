package domain

import "errors"

var (
	ErrJetNotFound     = errors.New("jet not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	// ErrInvalidRange is returned when arrival is not strictly after departure.
	ErrInvalidRange = errors.New("invalid time range: arrival must be after departure")
	// ErrConflict is returned when an active booking already holds the window.
	ErrConflict = errors.New("jet not available for selected time")
	// ErrInvalidState is wrapped with the current status on illegal cancellation.
	ErrInvalidState = errors.New("invalid booking state")
	// ErrJetHeld is returned when another request holds the window in redis.
	ErrJetHeld = errors.New("jet is being booked by another request")
	// ErrValidation wraps bad-input failures so handlers can map them to 400.
	ErrValidation = errors.New("validation error")
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
