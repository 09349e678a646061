//go:build windows

package protocol

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// discoverySockopts enables broadcast on the discovery socket.  Windows has
// no SO_REUSEPORT, so the reuse capability probe degrades directly to
// SO_REUSEADDR.
func discoverySockopts(network, address string, c syscall.RawConn) error {
	var optErr error
	err := c.Control(func(fd uintptr) {
		if optErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_BROADCAST, 1); optErr != nil {
			return
		}
		optErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return optErr
}
