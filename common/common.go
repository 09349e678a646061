package common

import "time"

const (
	// DefaultTimeout is the maximum time a single network operation waits
	// for a result before giving up
	DefaultTimeout = 1 * time.Second
)
