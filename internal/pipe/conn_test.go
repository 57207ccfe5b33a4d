package pipe

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newPair returns a wrapped client connection and the raw server end of an
// in-memory duplex stream. The returned cleanup tears both ends down and
// waits for the read pump to exit.
func newPair(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	c := Wrap(client)
	t.Cleanup(func() {
		server.Close()
		c.Close()
		<-c.Done()
	})
	return c, server
}

func TestConnExchange(t *testing.T) {
	c, server := newPair(t)

	go func() {
		buf := make([]byte, 64)
		n, err := server.Read(buf)
		if err != nil {
			return
		}
		if string(buf[:n]) == "GetVolume()" {
			server.Write([]byte("100"))
		}
	}()

	ch := c.Expect()
	require.NoError(t, c.Write([]byte("GetVolume()")))

	select {
	case data := <-ch:
		assert.Equal(t, "100", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("no data event delivered")
	}
}

func TestConnDropsDataWithoutWaiter(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	c := &Conn{nc: client, done: make(chan struct{})}
	defer c.Close()

	// No waiter armed: the event is discarded.
	c.deliver([]byte("unsolicited"))

	ch := c.Expect()
	c.deliver([]byte("wanted"))

	select {
	case data := <-ch:
		assert.Equal(t, "wanted", string(data))
	default:
		t.Fatal("armed waiter did not receive the next event")
	}
}

func TestConnExpectReplacesWaiter(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	c := &Conn{nc: client, done: make(chan struct{})}
	defer c.Close()

	stale := c.Expect()
	fresh := c.Expect()
	c.deliver([]byte("payload"))

	select {
	case <-stale:
		t.Fatal("replaced waiter received the event")
	default:
	}
	select {
	case data := <-fresh:
		assert.Equal(t, "payload", string(data))
	default:
		t.Fatal("current waiter did not receive the event")
	}
}

func TestConnDoneOnRemoteClose(t *testing.T) {
	c, server := newPair(t)

	require.NoError(t, server.Close())

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after remote close")
	}
	assert.True(t, errors.Is(c.Err(), io.EOF))
}

func TestConnDoneOnLocalClose(t *testing.T) {
	c, _ := newPair(t)

	require.NoError(t, c.Close())

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after local close")
	}
	assert.Error(t, c.Err())
}

func TestConnWriteAfterClose(t *testing.T) {
	c, _ := newPair(t)

	require.NoError(t, c.Close())
	<-c.Done()

	err := c.Write([]byte("DoStopSound()"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConnCloseIdempotent(t *testing.T) {
	c, _ := newPair(t)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
