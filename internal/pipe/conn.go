// Package pipe provides the transport for the remote-control channel:
// dialing the named pipe, probing it for readiness, and a connection
// wrapper that turns raw reads into discrete data events.
package pipe

import (
	"errors"
	"net"
	"sync"
)

// readBufferSize bounds a single inbound data event. Category listings with
// icons can run to hundreds of kilobytes.
const readBufferSize = 512 * 1024

var (
	// ErrClosed is returned by Write after the connection has closed.
	ErrClosed = errors.New("pipe connection closed")

	// ErrUnsupportedPlatform is returned when the native transport, or an
	// OS facility it depends on, is used on a non-Windows system.
	ErrUnsupportedPlatform = errors.New("soundpad remote control requires windows")
)

// Conn wraps a duplex byte-stream connection and delivers each successful
// Read as one data event. The protocol carries no request identifiers: a
// data event belongs to whichever exchange armed a waiter via Expect before
// writing. Data arriving with no armed waiter is dropped, the same way an
// event stream with no registered listener discards it.
type Conn struct {
	nc net.Conn

	mu     sync.Mutex
	waiter chan<- []byte
	closed bool
	err    error

	done chan struct{}
}

// Wrap takes ownership of nc and starts the read pump.
func Wrap(nc net.Conn) *Conn {
	c := &Conn{
		nc:   nc,
		done: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Expect arms the waiter for the next inbound data event and returns the
// channel it will be delivered on. Arming again before delivery replaces
// the previous waiter.
func (c *Conn) Expect() <-chan []byte {
	ch := make(chan []byte, 1)
	c.mu.Lock()
	c.waiter = ch
	c.mu.Unlock()
	return ch
}

// Write sends raw command bytes to the remote end.
func (c *Conn) Write(data []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	_, err := c.nc.Write(data)
	return err
}

// Close tears the connection down. The read pump exits and Done closes.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.nc.Close()
}

// Done is closed once the read pump has exited, whether from a remote
// close, a read error, or a local Close.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Err reports why the read pump exited. Meaningful once Done is closed.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Conn) readLoop() {
	defer close(c.done)
	buf := make([]byte, readBufferSize)
	for {
		n, err := c.nc.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			c.deliver(data)
		}
		if err != nil {
			c.mu.Lock()
			c.err = err
			c.closed = true
			c.mu.Unlock()
			c.nc.Close()
			return
		}
	}
}

// deliver hands one data event to the armed waiter, or drops it when none
// is armed. The waiter channel is buffered and consumed at most once, so
// the send never blocks the pump.
func (c *Conn) deliver(data []byte) {
	c.mu.Lock()
	w := c.waiter
	c.waiter = nil
	c.mu.Unlock()
	if w != nil {
		w <- data
	}
}
