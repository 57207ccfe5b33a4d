package soundpad

import (
	"fmt"

	"github.com/standardbeagle/soundpad-go/internal/pipe"
	"github.com/standardbeagle/soundpad-go/internal/session"
)

// Errors returned by the client. Transport and session errors are defined by
// the packages that detect them and re-exported here so callers only import
// this package.
var (
	// ErrNotConnected is returned when a command is issued with no live
	// connection and auto launch disabled.
	ErrNotConnected = session.ErrNotConnected
	// ErrConnectionClosed is returned when the connection drops underneath a
	// pending command.
	ErrConnectionClosed = session.ErrConnectionClosed
	// ErrClosed is returned after Close; a closed client never reconnects.
	ErrClosed = session.ErrSessionClosed
	// ErrUnsupportedPlatform is returned by the native pipe transport,
	// registry discovery, and process control on anything but Windows.
	ErrUnsupportedPlatform = pipe.ErrUnsupportedPlatform
)

// RequestError is returned when a listing request is answered with a status
// line instead of markup. Response holds the raw reply text, typically
// "R-404 Not found." or similar.
type RequestError struct {
	Response string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("soundpad rejected request: %s", e.Response)
}
