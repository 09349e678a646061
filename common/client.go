package common

import "time"

// Client defines the interface required by protocols
type Client interface {
	AddController(Controller) error
	RemoveControllerByAddr(string) error
	GetTimeout() *time.Duration
}
