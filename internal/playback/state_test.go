package playback

import "testing"

func TestModeWraps(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModeSequential, false},
		{ModeRepeatOne, false},
		{ModeRepeatAll, true},
		{ModeShuffle, true},
	}
	for _, tt := range tests {
		if got := tt.mode.Wraps(); got != tt.want {
			t.Errorf("%v.Wraps() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestStateIsActive(t *testing.T) {
	if StateStopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	if !StatePlaying.IsActive() {
		t.Error("Playing should be active")
	}
	if !StatePaused.IsActive() {
		t.Error("Paused should be active")
	}
}
