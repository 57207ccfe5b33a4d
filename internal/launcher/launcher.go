// Package launcher locates, starts, and stops the Soundpad process and
// waits for its remote-control pipe to come up. Discovery goes through the
// Windows registry; everything here degrades to explicit platform errors
// elsewhere.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/standardbeagle/soundpad-go/internal/pipe"
)

const (
	// ImageName is the executable image the target application runs as.
	ImageName = "Soundpad.exe"

	// DefaultPollInterval is the delay between control-pipe readiness probes.
	DefaultPollInterval = 100 * time.Millisecond
)

// ErrNotInstalled is returned when a launch is required but no Soundpad
// installation could be discovered.
var ErrNotInstalled = errors.New("soundpad installation not found")

// openCommandPattern matches the quoted executable path inside a registered
// shell open command, e.g. `"C:\Program Files\Soundpad\Soundpad.exe" "%1"`.
var openCommandPattern = regexp.MustCompile(`"([^"]*` + regexp.QuoteMeta(ImageName) + `)"`)

// Launcher manages the Soundpad process lifecycle.
type Launcher struct {
	// PipeName is the control channel probed for readiness.
	PipeName string

	// PollInterval is the delay between readiness probes. Zero means
	// DefaultPollInterval.
	PollInterval time.Duration

	// Log receives discovery and lifecycle diagnostics.
	Log *zap.Logger

	// Platform hooks, defaulted by New and replaced in tests.
	locate  func() (string, error)
	launch  func(path string) error
	running func() (bool, error)
	probe   func(name string, timeout time.Duration) error
}

// New creates a Launcher probing the given control pipe.
func New(pipeName string, log *zap.Logger) *Launcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Launcher{
		PipeName:     pipeName,
		PollInterval: DefaultPollInterval,
		Log:          log,
		locate:       locateExecutable,
		launch:       launchDetached,
		running:      processRunning,
		probe:        pipe.Probe,
	}
}

// LocateExecutable returns the installed executable path from the registry.
// An empty path with a nil error means Soundpad is not installed; callers
// must check. Off Windows it fails with pipe.ErrUnsupportedPlatform before
// any I/O.
func (l *Launcher) LocateExecutable() (string, error) {
	return l.locate()
}

// Launch spawns the executable detached and returns without waiting.
func (l *Launcher) Launch(path string) error {
	return l.launch(path)
}

// IsRunning reports whether a Soundpad process exists, matched by image name
// in the system process list.
func (l *Launcher) IsRunning() (bool, error) {
	return l.running()
}

// Terminate stops the running Soundpad process, matched by image name.
// Returns nil when no process is running.
func (l *Launcher) Terminate() error {
	return terminateProcess()
}

// WaitReady blocks until one probe connection to the control pipe succeeds,
// then returns with the probe closed. Probes repeat on a fixed interval and
// never time out on their own; bound the wait through ctx.
func (l *Launcher) WaitReady(ctx context.Context) error {
	interval := l.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	l.Log.Debug("waiting for control pipe", zap.String("pipe", l.PipeName))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		err := l.probe(l.PipeName, interval)
		if err == nil {
			return nil
		}
		if errors.Is(err, pipe.ErrUnsupportedPlatform) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// EnsureRunning is the auto-launch hook: when no Soundpad process exists it
// discovers the installation and starts it, then waits for the control pipe
// to accept clients.
func (l *Launcher) EnsureRunning(ctx context.Context) error {
	running, err := l.running()
	if err != nil {
		return err
	}
	if !running {
		path, err := l.locate()
		if err != nil {
			return err
		}
		if path == "" {
			return ErrNotInstalled
		}
		l.Log.Info("launching soundpad", zap.String("path", path))
		if err := l.launch(path); err != nil {
			return fmt.Errorf("launch soundpad: %w", err)
		}
	}
	return l.WaitReady(ctx)
}

// extractExecutablePath pulls the quoted executable path out of a registry
// open command. Returns "" when the command does not reference the target
// executable.
func extractExecutablePath(command string) string {
	m := openCommandPattern.FindStringSubmatch(command)
	if m == nil {
		return ""
	}
	return m[1]
}
