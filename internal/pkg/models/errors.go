package models

import "errors"

// Business-rule failures. Nothing is written when one of these is returned.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTripNotFound       = errors.New("trip not found")
	ErrNotTripOwner       = errors.New("only the driver can modify this trip")
	ErrNoSeatsAvailable   = errors.New("no seats available")
	ErrAlreadyBooked      = errors.New("user already booked this trip")
	ErrDriverCannotBook   = errors.New("driver cannot book own trip")
)

var businessErrors = []error{
	ErrUnauthenticated,
	ErrInvalidInput,
	ErrEmailTaken,
	ErrInvalidCredentials,
	ErrUserNotFound,
	ErrSessionNotFound,
	ErrTripNotFound,
	ErrNotTripOwner,
	ErrNoSeatsAvailable,
	ErrAlreadyBooked,
	ErrDriverCannotBook,
}

// IsBusinessError reports whether err is an expected rule violation rather
// than a storage or transport failure
func IsBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
