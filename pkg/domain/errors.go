package domain

import "errors"

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid parachute config")

// ErrFlightNotFound is returned when a flight ID is unknown to a recorder.
var ErrFlightNotFound = errors.New("flight not found")

// ErrOutput wraps failures reported by an actuator driver.
var ErrOutput = errors.New("actuator output failed")
