// Package protocol implements the MagicHome LAN protocol.
//
// This package is not designed to be used directly by end users, other than
// to specify a protocol version when creating a new Client from the
// magichome package.
//
// The currently implemented protocol versions are:
//
//	V1
package protocol

import "github.com/magichome-go/magichome/common"

// Protocol defines the interface between the Client and a protocol
// implementation
type Protocol interface {
	// SetClient sets the client on the protocol for bi-directional
	// communication
	SetClient(client common.Client)
	// Discover runs one discovery pass, registering controllers with the
	// client as they answer.  This is called immediately when the client
	// connects to the protocol
	Discover() error
	// Connect resolves the controller at addr without broadcasting
	Connect(addr string) (common.Controller, error)
	// Close closes the protocol driver, no further communication with the
	// protocol is possible
	Close() error

	// SetPower sets the power state on all known controllers
	SetPower(state bool) error
	// SetColor changes the color on all known controllers
	SetColor(color common.ColorState) error
}
