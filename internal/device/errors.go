package device

import "errors"

var (
	// ErrNotReady is returned for any command sent before the device is open.
	ErrNotReady = errors.New("device not ready")

	// ErrTrackNotFound is returned when no audio file backs the requested
	// track number.
	ErrTrackNotFound = errors.New("track not found")

	// ErrInvalidParameter is returned when a command is missing a required
	// parameter.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnrecognizedCommand is returned by Dispatch for commands outside the
	// supported set.
	ErrUnrecognizedCommand = errors.New("unrecognized command")
)
