//go:build !windows

// Package stderr routes stderr output from C libraries (ALSA, minimp3)
// that write directly to file descriptor 2 into a log file, so raw
// error messages never corrupt the TUI layout.
package stderr

import (
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
)

const appName = "ytune"

var (
	origStderr int
	logFile    *os.File
	started    bool
)

// Redirect points fd 2 at a log file under the XDG state directory and
// returns a logger writing there. Must be called early in main, before
// any C library initialization. On failure a stderr logger is returned
// and the program continues without redirection.
func Redirect() (*log.Logger, error) {
	fallback := log.New(os.Stderr, "", log.LstdFlags)
	if started {
		return fallback, nil
	}

	path, err := xdg.StateFile(filepath.Join(appName, "ytune.log"))
	if err != nil {
		return fallback, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fallback, err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		f.Close()
		return fallback, err
	}
	if err := syscall.Dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origStderr)
		f.Close()
		return fallback, err
	}

	logFile = f
	started = true
	return log.New(f, "", log.LstdFlags), nil
}

// WriteOriginal writes directly to the original stderr, bypassing the
// redirect. Used for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	if started && origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Restore puts the original stderr back. Call on program exit.
func Restore() {
	if !started {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	logFile.Close()
	started = false
}
