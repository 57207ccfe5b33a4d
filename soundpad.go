// Package soundpad remote-controls the Soundpad soundboard application
// through the named pipe it serves on Windows.
//
// A Client owns one connection to the pipe and exposes Soundpad's command
// surface as typed methods:
//
//	sp := soundpad.New(soundpad.WithAutoLaunch(true))
//	defer sp.Close()
//	if err := sp.Connect(ctx); err != nil {
//		return err
//	}
//	ok, err := sp.PlaySound(ctx, 7)
//
// The protocol is a single untagged request/response stream, so a Client
// runs exactly one command at a time; concurrent calls are serialized
// internally. Commands that Soundpad rejects (unknown index, nothing
// selected) come back as false with a log entry rather than an error;
// errors are reserved for transport and platform failures.
package soundpad

import (
	"context"
	"net"

	"go.uber.org/zap"

	"github.com/standardbeagle/soundpad-go/internal/launcher"
	"github.com/standardbeagle/soundpad-go/internal/protocol"
	"github.com/standardbeagle/soundpad-go/internal/session"
)

// DefaultPipeName is the control pipe Soundpad listens on.
const DefaultPipeName = `\\.\pipe\sp_remote_control`

// DialFunc opens the raw transport to the control pipe.
type DialFunc func(ctx context.Context, pipeName string) (net.Conn, error)

// QueryFunc carries one command to Soundpad and returns the reply text. A
// custom query channel fully substitutes the native pipe transport, for
// deployments where Soundpad sits behind a relay.
type QueryFunc func(ctx context.Context, command string) (string, error)

// Client remote-controls one Soundpad instance.
type Client struct {
	session *session.Session
	log     *zap.Logger

	// Options
	pipeName     string
	autoLaunch   bool
	reconnect    bool
	launch       func(ctx context.Context) error
	dial         DialFunc
	query        QueryFunc
	onConnect    func()
	onDisconnect func(error)
}

// Option configures a Client.
type Option func(*Client)

// WithPipeName overrides the control pipe name.
func WithPipeName(name string) Option {
	return func(c *Client) { c.pipeName = name }
}

// WithLogger routes diagnostics through log instead of discarding them.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithAutoLaunch makes the client start Soundpad when connecting or when a
// command finds it not running. Off by default.
func WithAutoLaunch(enable bool) Option {
	return func(c *Client) { c.autoLaunch = enable }
}

// WithAutoReconnect controls reconnection after a lost connection. On by
// default.
func WithAutoReconnect(enable bool) Option {
	return func(c *Client) { c.reconnect = enable }
}

// WithLaunchHook replaces the launch sequence run under auto launch. The
// default locates Soundpad through the registry, starts it detached, and
// waits for the control pipe.
func WithLaunchHook(fn func(ctx context.Context) error) Option {
	return func(c *Client) { c.launch = fn }
}

// WithDialer replaces the native pipe dialer.
func WithDialer(dial DialFunc) Option {
	return func(c *Client) { c.dial = dial }
}

// WithQueryChannel installs a custom query channel; the native transport is
// never opened.
func WithQueryChannel(query QueryFunc) Option {
	return func(c *Client) { c.query = query }
}

// WithConnectHandler registers fn to run each time a connection establishes,
// first connect and reconnects alike.
func WithConnectHandler(fn func()) Option {
	return func(c *Client) { c.onConnect = fn }
}

// WithDisconnectHandler registers fn to run when the connection is lost; the
// argument is the cause reported by the transport.
func WithDisconnectHandler(fn func(err error)) Option {
	return func(c *Client) { c.onDisconnect = fn }
}

// New creates a client. Without options it talks to DefaultPipeName,
// reconnects after connection loss, never launches Soundpad itself, and
// discards diagnostics.
func New(opts ...Option) *Client {
	c := &Client{
		pipeName:  DefaultPipeName,
		reconnect: true,
		log:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.launch == nil {
		c.launch = launcher.New(c.pipeName, c.log).EnsureRunning
	}

	cfg := session.Config{
		PipeName:     c.pipeName,
		AutoLaunch:   c.autoLaunch,
		Reconnect:    c.reconnect,
		Launch:       c.launch,
		OnConnect:    c.onConnect,
		OnDisconnect: c.onDisconnect,
		Log:          c.log,
	}
	if c.dial != nil {
		cfg.Dial = session.DialFunc(c.dial)
	}
	if c.query != nil {
		cfg.Query = session.QueryFunc(c.query)
	}
	c.session = session.New(cfg)

	return c
}

// Connect establishes the control connection. Under auto launch the launch
// hook runs first. Commands issued before Connect returns wait for the
// connection instead of failing.
func (c *Client) Connect(ctx context.Context) error {
	return c.session.Connect(ctx)
}

// Disconnect closes the connection. The reconnect policy still applies; use
// Close to shut down for good.
func (c *Client) Disconnect() error {
	return c.session.Disconnect()
}

// Close disconnects and disables the client permanently.
func (c *Client) Close() error {
	return c.session.Close()
}

// Connected reports whether a live connection exists right now.
func (c *Client) Connected() bool {
	return c.session.Connected()
}

// SendQuery sends a raw command line and returns the trimmed reply text.
// The typed methods cover the documented surface; SendQuery is the escape
// hatch for anything they do not.
func (c *Client) SendQuery(ctx context.Context, command string) (string, error) {
	resp, err := c.session.SendQuery(ctx, command)
	if err != nil {
		return "", err
	}
	return protocol.TrimResponse(resp), nil
}

// LocateSoundpad returns the installed executable path recorded in the
// registry, or "" when Soundpad is not registered. Windows only.
func LocateSoundpad() (string, error) {
	return launcher.New(DefaultPipeName, zap.NewNop()).LocateExecutable()
}

// IsSoundpadRunning reports whether a Soundpad process exists. Windows only.
func IsSoundpadRunning() (bool, error) {
	return launcher.New(DefaultPipeName, zap.NewNop()).IsRunning()
}

// StartSoundpad launches Soundpad if it is not already running and waits
// until the control pipe accepts connections. Windows only.
func StartSoundpad(ctx context.Context) error {
	return launcher.New(DefaultPipeName, zap.NewNop()).EnsureRunning(ctx)
}

// TerminateSoundpad kills the running Soundpad process. Windows only.
func TerminateSoundpad() error {
	return launcher.New(DefaultPipeName, zap.NewNop()).Terminate()
}
