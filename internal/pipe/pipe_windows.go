//go:build windows

package pipe

import (
	"context"
	"net"
	"time"

	"github.com/Microsoft/go-winio"
)

// Dial connects to the named pipe as a client. The pipe server is the
// target application; it must already be running and listening.
func Dial(ctx context.Context, name string) (net.Conn, error) {
	return winio.DialPipeContext(ctx, name)
}

// Probe makes a single connection attempt bounded by timeout and closes it
// immediately. A nil return means the pipe is accepting clients.
func Probe(name string, timeout time.Duration) error {
	conn, err := winio.DialPipe(name, &timeout)
	if err != nil {
		return err
	}
	return conn.Close()
}
