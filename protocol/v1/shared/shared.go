// Package shared holds protocol constants used by both the packet codec and
// the device session layer.
package shared

const (
	// DefaultControlPort is the TCP port controllers accept commands on
	DefaultControlPort = 5577
	// DefaultDiscoveryPort is the UDP port used for the discovery handshake
	DefaultDiscoveryPort = 48899
	// DefaultBroadcastAddress is where the discovery probe is sent when no
	// unicast target is given
	DefaultBroadcastAddress = `255.255.255.255`
	// DiscoveryProbe is the literal handshake message controllers answer to
	DiscoveryProbe = `HF-A11ASSISTHREAD`
	// ResponseBufferSize bounds a single read from a controller
	ResponseBufferSize = 1024
)
