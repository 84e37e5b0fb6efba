package ui

import (
	"testing"
	"time"

	"github.com/bowling220/YTune/internal/playback"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{3*time.Minute + 7*time.Second, "3:07"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-5 * time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(10, 0.5); len([]rune(got)) != 10 {
		t.Errorf("progressBar width = %d, want 10", len([]rune(got)))
	}
	if got := progressBar(4, 2.0); got != "━━━━" {
		t.Errorf("overfull bar = %q", got)
	}
	if got := progressBar(4, -1); got != "────" {
		t.Errorf("negative bar = %q", got)
	}
	if got := progressBar(0, 0.5); got != "" {
		t.Errorf("zero-width bar = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"héllo wörld", 6, "héllo…"},
		{"x", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestNextMode_Cycles(t *testing.T) {
	order := []playback.Mode{
		playback.ModeSequential,
		playback.ModeRepeatAll,
		playback.ModeRepeatOne,
		playback.ModeShuffle,
		playback.ModeSequential,
	}
	for i := 0; i < len(order)-1; i++ {
		if got := nextMode(order[i]); got != order[i+1] {
			t.Errorf("nextMode(%v) = %v, want %v", order[i], got, order[i+1])
		}
	}
}
