package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(OpLibraryScan, nil); got != "" {
		t.Errorf("Format with nil error = %q, want empty", got)
	}

	err := errors.New("permission denied")
	want := "Failed to scan library: permission denied"
	if got := Format(OpLibraryScan, err); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("not found")

	want := "Failed to load playlist 'Favorites': not found"
	if got := FormatWith(OpPlaylistLoad, "Favorites", err); got != want {
		t.Errorf("FormatWith = %q, want %q", got, want)
	}

	// Empty context falls back to Format.
	want = "Failed to load playlist: not found"
	if got := FormatWith(OpPlaylistLoad, "", err); got != want {
		t.Errorf("FormatWith empty context = %q, want %q", got, want)
	}

	if got := FormatWith(OpPlaylistLoad, "Favorites", nil); got != "" {
		t.Errorf("FormatWith nil error = %q, want empty", got)
	}
}
