package common

import "errors"

var (
	// ErrNotFound is returned when a lookup fails to locate a controller or
	// subscription
	ErrNotFound = errors.New(`not found`)
	// ErrDuplicate is returned when attempting to register a controller that
	// is already known
	ErrDuplicate = errors.New(`duplicate`)
	// ErrClosed is returned on operations against a closed subscription
	ErrClosed = errors.New(`closed`)
	// ErrTimeout is returned when an event could not be delivered in time
	ErrTimeout = errors.New(`timed out`)
	// ErrNoResponse is returned when a controller does not answer a query
	// before the configured timeout
	ErrNoResponse = errors.New(`no response from controller`)
	// ErrMalformedResponse is returned when controller data does not match
	// the expected shape
	ErrMalformedResponse = errors.New(`malformed controller response`)
	// ErrDeviceNotFound is returned when a single-address connect receives
	// no valid reply
	ErrDeviceNotFound = errors.New(`device not found`)
)
