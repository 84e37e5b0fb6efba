//go:build windows

// Windows audio backends do not produce the ALSA-style stderr noise,
// so no redirection is needed.
package stderr

import (
	"log"
	"os"
)

// Redirect is a no-op on Windows; logging goes to stderr.
func Redirect() (*log.Logger, error) {
	return log.New(os.Stderr, "", log.LstdFlags), nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Restore is a no-op on Windows.
func Restore() {}
