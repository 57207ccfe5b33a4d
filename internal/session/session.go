// Package session implements the command/response session over the
// remote-control channel: connection lifecycle, the connection-ready
// signal, one serialized exchange at a time, and the reconnect policy.
//
// The protocol carries no request identifiers. Pairing relies on the
// transport's ordering guarantee: the very next inbound data event after a
// write is that command's response. The session therefore permits exactly
// one exchange in flight.
package session

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/standardbeagle/soundpad-go/internal/pipe"
)

// DefaultReconnectDelay paces reconnect attempts after a failed dial.
const DefaultReconnectDelay = 100 * time.Millisecond

var (
	// ErrNotConnected is returned when a query is issued with no transport
	// open and auto-launch disabled.
	ErrNotConnected = errors.New("not connected to soundpad")

	// ErrConnectionClosed is returned when the transport closes underneath
	// a pending exchange.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrSessionClosed is returned after Close.
	ErrSessionClosed = errors.New("session closed")
)

// State is the connection state of a Session.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// DialFunc opens the native transport to the control channel.
type DialFunc func(ctx context.Context, name string) (net.Conn, error)

// QueryFunc is an injected transport strategy: one command in, one response
// text out. Installing one fully substitutes the native transport.
type QueryFunc func(ctx context.Context, command string) (string, error)

// LaunchFunc starts the target application and waits for its control
// channel to accept connections.
type LaunchFunc func(ctx context.Context) error

// Config configures a Session.
type Config struct {
	// PipeName is the control channel endpoint.
	PipeName string

	// Dial opens the native transport. Defaults to pipe.Dial.
	Dial DialFunc

	// Query, when set, replaces the native transport entirely: Connect
	// flags the session open immediately and SendQuery delegates to it.
	Query QueryFunc

	// AutoLaunch runs the Launch hook before dialing and lets SendQuery
	// trigger a connect instead of failing when disconnected.
	AutoLaunch bool

	// Launch starts the target application and waits for channel
	// readiness. The default is a no-op; an environment able to manage
	// the process installs a real hook.
	Launch LaunchFunc

	// Reconnect re-establishes the session after a transport close.
	Reconnect bool

	// ReconnectDelay is the pause between failed reconnect attempts.
	// Zero means DefaultReconnectDelay.
	ReconnectDelay time.Duration

	// OnConnect is called after each successful connect.
	OnConnect func()

	// OnDisconnect is called when the transport is lost, with the cause.
	OnDisconnect func(error)

	// Log receives session diagnostics.
	Log *zap.Logger
}

// Session owns at most one live transport and serializes exchanges on it.
type Session struct {
	cfg Config

	mu          sync.Mutex
	state       State
	conn        *pipe.Conn
	ready       chan struct{}
	readyClosed bool
	closed      bool

	// connectMu serializes connect attempts; sendMu serializes exchanges.
	connectMu sync.Mutex
	sendMu    sync.Mutex

	// life is canceled by Close and bounds every background connect.
	life     context.Context
	lifeStop context.CancelFunc
}

// New creates a disconnected Session.
func New(cfg Config) *Session {
	if cfg.Dial == nil {
		cfg.Dial = pipe.Dial
	}
	if cfg.Launch == nil {
		cfg.Launch = func(context.Context) error { return nil }
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	life, stop := context.WithCancel(context.Background())
	return &Session{
		cfg:      cfg,
		ready:    make(chan struct{}),
		life:     life,
		lifeStop: stop,
	}
}

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connected reports whether the session is flagged open.
func (s *Session) Connected() bool {
	return s.State() == StateConnected
}

// Connect establishes the session. With a custom query channel installed
// the session is logically open as soon as it is flagged connected.
// Otherwise the attempt optionally runs the launch hook, dials the control
// pipe, and arms the transport. A dial or launch failure marks the session
// disconnected and is returned to the caller unwrapped.
func (s *Session) Connect(ctx context.Context) error {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.cfg.Query != nil {
		s.state = StateConnected
		s.resolveReadyLocked()
		s.mu.Unlock()
		s.notifyConnect()
		return nil
	}
	if s.state == StateConnected {
		s.mu.Unlock()
		return nil
	}
	s.state = StateConnecting
	s.armReadyLocked()
	autoLaunch := s.cfg.AutoLaunch
	s.mu.Unlock()

	if autoLaunch {
		if err := s.cfg.Launch(ctx); err != nil {
			s.failConnect(err)
			return err
		}
	}

	nc, err := s.cfg.Dial(ctx, s.cfg.PipeName)
	if err != nil {
		s.failConnect(err)
		return err
	}

	conn := pipe.Wrap(nc)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return ErrSessionClosed
	}
	s.conn = conn
	s.state = StateConnected
	s.resolveReadyLocked()
	s.mu.Unlock()

	go s.watch(conn)
	s.notifyConnect()
	return nil
}

// Disconnect closes the live transport, fire and forget: no error when
// nothing is open. A configured reconnect policy still observes the close
// and re-establishes the session; use Close for a terminal shutdown.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Close shuts the session down permanently: reconnect is disabled, the
// transport closed, and blocked callers released.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.state = StateDisconnected
	s.mu.Unlock()

	s.lifeStop()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// SendQuery writes one command and returns the text of the very next data
// event on the transport. With a custom query channel installed it
// delegates directly. Queries issued before Connect completes wait on the
// connection-ready signal; ctx bounds the whole exchange, including that
// wait, and is the only bound (a stalled transport never resolves on its
// own).
func (s *Session) SendQuery(ctx context.Context, command string) (string, error) {
	if s.cfg.Query != nil {
		return s.cfg.Query(ctx, command)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrSessionClosed
	}
	if s.state == StateDisconnected {
		if !s.cfg.AutoLaunch {
			s.mu.Unlock()
			return "", ErrNotConnected
		}
		s.mu.Unlock()
		go func() {
			if err := s.Connect(s.life); err != nil {
				s.cfg.Log.Warn("auto connect failed", zap.Error(err))
			}
		}()
	} else {
		s.mu.Unlock()
	}

	if err := s.awaitReady(ctx); err != nil {
		return "", err
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return "", ErrConnectionClosed
	}

	data := conn.Expect()
	if err := conn.Write([]byte(command)); err != nil {
		return "", err
	}

	select {
	case resp := <-data:
		return string(resp), nil
	case <-conn.Done():
		return "", ErrConnectionClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// awaitReady blocks until the session reports connected. The ready channel
// is re-read on every wakeup: a failed attempt leaves it open and a later
// successful attempt closes whichever channel is current.
func (s *Session) awaitReady(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return ErrSessionClosed
		}
		if s.state == StateConnected {
			s.mu.Unlock()
			return nil
		}
		ready := s.ready
		s.mu.Unlock()

		select {
		case <-ready:
		case <-s.life.Done():
			return ErrSessionClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// armReadyLocked replaces a resolved ready signal with a fresh one so that
// callers arriving during a reconnect window wait for the new connection.
// An unresolved signal is kept: its waiters are released by the next
// successful attempt. Callers hold mu.
func (s *Session) armReadyLocked() {
	if s.readyClosed {
		s.ready = make(chan struct{})
		s.readyClosed = false
	}
}

// resolveReadyLocked marks the current ready signal resolved. Callers hold mu.
func (s *Session) resolveReadyLocked() {
	if !s.readyClosed {
		close(s.ready)
		s.readyClosed = true
	}
}

func (s *Session) failConnect(err error) {
	s.mu.Lock()
	s.state = StateDisconnected
	s.mu.Unlock()
	s.cfg.Log.Warn("connect failed", zap.Error(err))
}

func (s *Session) notifyConnect() {
	if s.cfg.OnConnect != nil {
		s.cfg.OnConnect()
	}
}

// watch observes one transport for its lifetime. When the transport is
// lost it flips the session to disconnected, re-arms the ready signal,
// notifies, and starts the reconnect loop without blocking close handling.
func (s *Session) watch(conn *pipe.Conn) {
	<-conn.Done()
	cause := conn.Err()

	s.mu.Lock()
	active := s.conn == conn
	if active {
		s.conn = nil
		s.state = StateDisconnected
		s.armReadyLocked()
	}
	reconnect := active && s.cfg.Reconnect && !s.closed
	s.mu.Unlock()

	if !active {
		return
	}

	s.cfg.Log.Info("connection lost", zap.Error(cause))
	if s.cfg.OnDisconnect != nil {
		s.cfg.OnDisconnect(cause)
	}
	if reconnect {
		go s.reconnectLoop()
	}
}

// reconnectLoop re-invokes Connect until it succeeds or the session is
// closed, pausing between failed attempts.
func (s *Session) reconnectLoop() {
	delay := s.cfg.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	for {
		err := s.Connect(s.life)
		if err == nil || errors.Is(err, ErrSessionClosed) {
			return
		}
		s.cfg.Log.Warn("reconnect attempt failed", zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-s.life.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
