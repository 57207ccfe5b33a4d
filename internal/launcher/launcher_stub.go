//go:build !windows

package launcher

import "github.com/standardbeagle/soundpad-go/internal/pipe"

// The registry and process-list facilities only exist on Windows. Every
// stub fails fast, before any I/O.

func locateExecutable() (string, error) {
	return "", pipe.ErrUnsupportedPlatform
}

func launchDetached(path string) error {
	return pipe.ErrUnsupportedPlatform
}

func processRunning() (bool, error) {
	return false, pipe.ErrUnsupportedPlatform
}

func terminateProcess() error {
	return pipe.ErrUnsupportedPlatform
}
