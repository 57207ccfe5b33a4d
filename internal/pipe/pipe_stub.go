//go:build !windows

package pipe

import (
	"context"
	"net"
	"time"
)

// Dial fails before any I/O: the remote-control pipe only exists on Windows.
func Dial(ctx context.Context, name string) (net.Conn, error) {
	return nil, ErrUnsupportedPlatform
}

// Probe fails before any I/O on non-Windows systems.
func Probe(name string, timeout time.Duration) error {
	return ErrUnsupportedPlatform
}
