// Package magichome provides a simple Go interface to the MagicHome LAN
// protocol for network-attached RGB(W) LED controllers.
//
// Also included in cmd/magichome is a small CLI utility that allows
// interacting with your MagicHome controllers on the LAN.
package magichome

import (
	"time"

	"github.com/magichome-go/magichome/common"
	"github.com/magichome-go/magichome/protocol"
)

const (
	// VERSION of this library
	VERSION = `0.1.0`
)

// NewClient returns a pointer to a new Client and any error that occurred
// initializing the client, using the protocol p.  It also kicks off a
// discovery run.
func NewClient(p protocol.Protocol) (*Client, error) {
	c := &Client{
		protocol:              p,
		controllers:           make(map[string]common.Controller),
		subscriptions:         make(map[string]*common.Subscription),
		timeout:               common.DefaultTimeout,
		internalRetryInterval: 10 * time.Millisecond,
		quitChan:              make(chan bool, 1),
	}
	p.SetClient(c)
	err := c.discover()
	return c, err
}

// SetLogger allows assigning a custom levelled logger that conforms to the
// common.Logger interface.  To capture logs generated during client
// creation, this should be called before creating a Client.  Defaults to
// common.StubLogger, which does no logging at all.
func SetLogger(logger common.Logger) {
	common.SetLogger(logger)
}
