//go:build windows

package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// registryKey is the file-association class Soundpad registers for its
// sound-list files; its default open command carries the installed
// executable path.
const registryKey = `spl\shell\open\command`

// locateExecutable reads the registered open command from HKCR and extracts
// the quoted executable path. Returns "" without error when no usable entry
// exists.
func locateExecutable() (string, error) {
	key, err := registry.OpenKey(registry.CLASSES_ROOT, registryKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open registry key %q: %w", registryKey, err)
	}
	defer key.Close()

	command, _, err := key.GetStringValue("")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read open command: %w", err)
	}
	return extractExecutablePath(command), nil
}

// launchDetached starts the executable without a parent-child tie; Soundpad
// keeps running independently of this process.
func launchDetached(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// processRunning scans the system process list for the Soundpad image name.
func processRunning() (bool, error) {
	pid, err := findProcess()
	if err != nil {
		return false, err
	}
	return pid != 0, nil
}

// terminateProcess stops the process matching the Soundpad image name.
// Nil when none is running.
func terminateProcess() error {
	pid, err := findProcess()
	if err != nil {
		return err
	}
	if pid == 0 {
		return nil
	}
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		return fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(handle)
	if err := windows.TerminateProcess(handle, 0); err != nil {
		return fmt.Errorf("terminate process %d: %w", pid, err)
	}
	return nil
}

// findProcess walks a Toolhelp32 snapshot looking for the Soundpad image
// name. Returns 0 when no match exists.
func findProcess() (uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return 0, fmt.Errorf("process snapshot walk: %w", err)
	}
	for {
		if strings.EqualFold(windows.UTF16ToString(entry.ExeFile[:]), ImageName) {
			return entry.ProcessID, nil
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				return 0, nil
			}
			return 0, fmt.Errorf("process snapshot walk: %w", err)
		}
	}
}
