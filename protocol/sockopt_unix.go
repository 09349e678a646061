//go:build !windows

package protocol

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// discoverySockopts enables broadcast on the discovery socket and applies
// reuse semantics as an ordered capability probe: reuse-port where the
// platform supports it, otherwise reuse-address, otherwise the probe error
// is propagated.
func discoverySockopts(network, address string, c syscall.RawConn) error {
	var optErr error
	err := c.Control(func(fd uintptr) {
		if optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1); optErr != nil {
			return
		}
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
			optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		}
	})
	if err != nil {
		return err
	}
	return optErr
}
