// Package relay implements a WebSocket query channel for deployments where
// Soundpad runs next to a relay bridge and the controlling host is remote.
// Channel.Query plugs into soundpad.WithQueryChannel.
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// KeepAliveInterval is the ping cadence holding idle relay connections open.
const KeepAliveInterval = 30 * time.Second

// ErrChannelClosed is returned by Query after Close or once the relay
// connection is gone.
var ErrChannelClosed = errors.New("relay channel closed")

// Channel tunnels commands through a relay bridge over one WebSocket.
// Command and reply travel as single text frames. Like the native pipe
// protocol the stream carries no request identifiers: Query serializes
// exchanges and pairs each reply with the command written just before it.
type Channel struct {
	conn *websocket.Conn
	log  *zap.Logger

	// queryMu serializes exchanges; mu guards the closed flag.
	queryMu sync.Mutex
	mu      sync.Mutex
	closed  bool

	keepAliveDone chan struct{}
}

// Dial connects to the relay bridge at url (ws:// or wss://).
func Dial(ctx context.Context, url string) (*Channel, error) {
	return DialWithLogger(ctx, url, zap.NewNop())
}

// DialWithLogger is Dial with diagnostics routed through log.
func DialWithLogger(ctx context.Context, url string, log *zap.Logger) (*Channel, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("dial relay: %w", err)
	}

	ch := &Channel{
		conn:          conn,
		log:           log,
		keepAliveDone: make(chan struct{}),
	}
	go ch.keepAlive()
	return ch, nil
}

// Query sends command as one text frame and returns the next text frame as
// the reply. Canceling ctx mid-exchange closes the channel: with no request
// identifiers a late reply could not be told apart from the next one.
func (ch *Channel) Query(ctx context.Context, command string) (string, error) {
	ch.queryMu.Lock()
	defer ch.queryMu.Unlock()

	if ch.isClosed() {
		return "", ErrChannelClosed
	}
	ch.conn.SetReadDeadline(time.Time{})

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			// Fail the pending read so Query returns.
			ch.conn.SetReadDeadline(time.Now())
		case <-watchDone:
		}
	}()

	if err := ch.conn.WriteMessage(websocket.TextMessage, []byte(command)); err != nil {
		ch.Close()
		return "", fmt.Errorf("write command: %w", err)
	}

	for {
		msgType, data, err := ch.conn.ReadMessage()
		if err != nil {
			ch.Close()
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("read reply: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

// Close shuts the channel down. Safe to call more than once.
func (ch *Channel) Close() error {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return nil
	}
	ch.closed = true
	ch.mu.Unlock()

	close(ch.keepAliveDone)
	ch.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return ch.conn.Close()
}

func (ch *Channel) isClosed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}

// keepAlive pings the relay so intermediaries keep the idle connection open.
// Control frames are safe to write concurrently with Query's text frames.
func (ch *Channel) keepAlive() {
	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ch.keepAliveDone:
			return
		case <-ticker.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := ch.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				ch.log.Debug("relay ping failed", zap.Error(err))
			}
		}
	}
}
