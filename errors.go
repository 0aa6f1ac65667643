package marbling

import "errors"

var (
	// ErrInvalidConfiguration is returned by NewEngine and Config.Validate
	// when a configuration value has no usable meaning, such as a
	// non-positive detail or drop capacity.
	ErrInvalidConfiguration = errors.New("marbling: invalid configuration")

	// ErrInvalidArgument is returned by Spawn for a non-positive radius or
	// non-finite coordinates.
	ErrInvalidArgument = errors.New("marbling: invalid argument")

	// ErrClosed is returned when an Engine is used after Close.
	ErrClosed = errors.New("marbling: engine closed")
)
